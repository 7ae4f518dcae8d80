package behavior

import (
	"testing"

	"integrityd/internal/event"
)

func pastes(n int, chars int, startMs, stepMs int64) []event.Event {
	out := make([]event.Event, n)
	for i := range out {
		out[i] = event.Event{Kind: event.KindPaste, Timestamp: startMs + int64(i)*stepMs, CharCount: chars}
	}
	return out
}

func keystrokes(n int, startMs, stepMs int64) []event.Event {
	out := make([]event.Event, n)
	for i := range out {
		out[i] = event.Event{Kind: event.KindKeystroke, Timestamp: startMs + int64(i)*stepMs}
	}
	return out
}

func TestAnalyzeEmptyLogIsFullyTrusted(t *testing.T) {
	got := New().Analyze(nil)
	if got.TrustScore != 100 || got.IsSuspicious || len(got.Flags) != 0 {
		t.Errorf("Analyze(nil) = %+v, want full trust", got)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name           string
		events         []event.Event
		wantTrust      int
		wantSuspicious bool
		wantFlags      []string
	}{
		{
			name:      "normal typing session",
			events:    keystrokes(15, 0, 200),
			wantTrust: 100,
		},
		{
			name:      "two large pastes",
			events:    pastes(2, 300, 0, 30_000),
			wantTrust: 80,
			wantFlags: []string{"bulk content dumping"},
		},
		{
			name:      "many small pastes in a burst",
			events:    pastes(6, 10, 0, 1000),
			wantTrust: 70,
			wantFlags: []string{"rapid paste sequence"},
		},
		{
			name:           "large pastes in a burst",
			events:         pastes(6, 100, 0, 1000),
			wantTrust:      50,
			wantSuspicious: true,
			wantFlags:      []string{"bulk content dumping", "rapid paste sequence"},
		},
		{
			name:           "superhuman typing cadence",
			events:         keystrokes(15, 0, 10),
			wantTrust:      50,
			wantSuspicious: true,
			wantFlags:      []string{"superhuman typing cadence"},
		},
		{
			name:           "every pattern at once",
			events:         append(pastes(6, 100, 0, 1000), keystrokes(12, 10_000, 5)...),
			wantTrust:      0,
			wantSuspicious: true,
			wantFlags:      []string{"bulk content dumping", "rapid paste sequence", "superhuman typing cadence"},
		},
		{
			name:      "pastes spread over time",
			events:    pastes(6, 10, 0, 60_000),
			wantTrust: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Analyze(tt.events)
			if got.TrustScore != tt.wantTrust {
				t.Errorf("TrustScore = %d, want %d", got.TrustScore, tt.wantTrust)
			}
			if got.IsSuspicious != tt.wantSuspicious {
				t.Errorf("IsSuspicious = %v, want %v", got.IsSuspicious, tt.wantSuspicious)
			}
			if len(got.Flags) != len(tt.wantFlags) {
				t.Fatalf("Flags = %v, want %v", got.Flags, tt.wantFlags)
			}
			for i, want := range tt.wantFlags {
				if got.Flags[i] != want {
					t.Errorf("Flags[%d] = %q, want %q", i, got.Flags[i], want)
				}
			}
		})
	}
}

func TestMeanIntervalMs(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []int64
		want       float64
	}{
		{name: "too few", timestamps: []int64{5}, want: 0},
		{name: "even spacing", timestamps: []int64{0, 10, 20, 30}, want: 10},
		{name: "uneven spacing", timestamps: []int64{0, 10, 40}, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanIntervalMs(tt.timestamps); got != tt.want {
				t.Errorf("meanIntervalMs(%v) = %v, want %v", tt.timestamps, got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(Findings{TrustScore: 50})
	want := "suspicious authoring behavior (trust deficit 50)"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}
