package stylometry

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeShortTextScoresZero(t *testing.T) {
	a := New()
	for _, text := range []string{"", "Too short.", strings.Repeat("x", 49)} {
		got := a.Analyze(text)
		if got.Score != 0 {
			t.Errorf("Analyze(%q).Score = %d, want 0", text, got.Score)
		}
		if got.IsLikelyAI {
			t.Errorf("Analyze(%q).IsLikelyAI = true, want false", text)
		}
		if got.Confidence != ConfidenceMedium {
			t.Errorf("Analyze(%q).Confidence = %q, want %q", text, got.Confidence, ConfidenceMedium)
		}
		if len(got.Factors) != 0 {
			t.Errorf("Analyze(%q).Factors = %v, want empty", text, got.Factors)
		}
	}
}

func TestAnalyzeNaturalProse(t *testing.T) {
	// Varied sentence lengths, no transition or fingerprint phrases, plain
	// vocabulary.
	text := "I went to the store yesterday. It rained hard. I bought milk, eggs, and bread for tomorrow's breakfast."

	got := New().Analyze(text)

	if got.IsLikelyAI {
		t.Errorf("IsLikelyAI = true for natural prose, want false")
	}
	// Sentence lengths 6/3/9 give CoV just above the uniform band, so the
	// only contribution is the moderate-rhythm delta.
	if got.Score != 15 {
		t.Errorf("Score = %d, want 15", got.Score)
	}
	if got.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want %q", got.Confidence, ConfidenceMedium)
	}
}

func TestAnalyzeTransitionHeavyProse(t *testing.T) {
	text := "Furthermore, the system processes data efficiently. " +
		"Moreover, the system handles errors gracefully. " +
		"In conclusion, the system meets all requirements. " +
		"Additionally, the system scales without issues. " +
		"Notably, the system performs well consistently."

	got := New().Analyze(text)

	if !got.IsLikelyAI {
		t.Fatalf("IsLikelyAI = false, want true (score %d, factors %v)", got.Score, got.Factors)
	}
	if got.Score < 55 {
		t.Errorf("Score = %d, want at least 55 (uniform rhythm + dense transitions)", got.Score)
	}
	if !containsFactor(got.Factors, "uniform sentence rhythm") {
		t.Errorf("Factors = %v, want uniform sentence rhythm", got.Factors)
	}
	if !containsFactor(got.Factors, "5 formal transition phrases") {
		t.Errorf("Factors = %v, want transition phrase count", got.Factors)
	}
}

func TestAnalyzeFingerprintPhrases(t *testing.T) {
	text := "As an AI language model, I do not have personal opinions about this topic at all."

	got := New().Analyze(text)

	if !got.IsLikelyAI {
		t.Fatalf("IsLikelyAI = false, want true (score %d)", got.Score)
	}
	if !containsFactor(got.Factors, `fingerprint phrase: "as an ai language model"`) {
		t.Errorf("Factors = %v, want disclosure phrase factor", got.Factors)
	}
	if !containsFactor(got.Factors, `fingerprint phrase: "i do not have personal opinions"`) {
		t.Errorf("Factors = %v, want hedging phrase factor", got.Factors)
	}
}

func TestAnalyzeScoreClampsAt100(t *testing.T) {
	// Six fingerprint phrases alone contribute 120 before the clamp.
	text := "As an AI language model and as a large language model, in today's fast-paced world " +
		"and in the ever-evolving landscape, we unlock the full potential and navigate the complexities."

	got := New().Analyze(text)

	if got.Score != 100 {
		t.Errorf("Score = %d, want 100 after clamp", got.Score)
	}
	if got.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %q, want %q", got.Confidence, ConfidenceHigh)
	}
	if !got.IsLikelyAI {
		t.Error("IsLikelyAI = false, want true")
	}
}

func TestSentenceLengthCoV(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		want      float64
	}{
		{
			name:      "no sentences",
			sentences: nil,
			want:      0,
		},
		{
			name:      "uniform lengths",
			sentences: []string{"one two three", "four five six", "seven eight nine"},
			want:      0,
		},
		{
			name:      "varied lengths",
			sentences: []string{"one", "one two three four five"},
			// lengths 1 and 5: mean 3, sd 2
			want: 2.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sentenceLengthCoV(tt.sentences)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("sentenceLengthCoV = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantSd   float64
	}{
		{name: "empty", values: nil, wantMean: 0, wantSd: 0},
		{name: "single", values: []float64{4}, wantMean: 4, wantSd: 0},
		{name: "spread", values: []float64{2, 4, 4, 4, 5, 5, 7, 9}, wantMean: 5, wantSd: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, sd := meanStd(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.0001 || math.Abs(sd-tt.wantSd) > 0.0001 {
				t.Errorf("meanStd(%v) = (%v, %v), want (%v, %v)", tt.values, mean, sd, tt.wantMean, tt.wantSd)
			}
		})
	}
}

func containsFactor(factors []string, want string) bool {
	for _, f := range factors {
		if f == want {
			return true
		}
	}
	return false
}
