// Package behavior scores a sequence of authoring-interaction events for
// bot-like or bulk-dumping patterns. The analyzer is pure: events are
// consumed read-only and no state survives a call.
package behavior

import (
	"fmt"

	"integrityd/internal/event"
)

// Findings is the result of a single behavior analysis.
type Findings struct {
	TrustScore   int      `json:"trust_score"`
	IsSuspicious bool     `json:"is_suspicious"`
	Flags        []string `json:"flags"`
}

// Thresholds control the penalty rules. Defaults reproduce the production
// policy; overrides come from the config layer.
type Thresholds struct {
	// BulkPasteChars is the total pasted character count above which paste
	// activity is examined for dumping.
	BulkPasteChars int

	// BulkPasteMaxEvents: pasted volume arriving in fewer events than this
	// is dumping regardless of chunk size.
	BulkPasteMaxEvents int

	// BulkPasteChunkChars: pasted volume arriving in chunks averaging at
	// least this many characters is dumping even across many events.
	BulkPasteChunkChars int

	// RapidPasteMinEvents and RapidPasteWindowMs flag paste sequences too
	// dense for deliberate authoring.
	RapidPasteMinEvents int
	RapidPasteWindowMs  int64

	// CadenceMinKeystrokes and CadenceMeanIntervalMs flag keystroke streams
	// faster than human motor limits.
	CadenceMinKeystrokes  int
	CadenceMeanIntervalMs float64

	// SuspiciousTrust is the trust score below which behavior is flagged.
	SuspiciousTrust int
}

// DefaultThresholds returns the production penalty rules.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BulkPasteChars:        500,
		BulkPasteMaxEvents:    3,
		BulkPasteChunkChars:   100,
		RapidPasteMinEvents:   5,
		RapidPasteWindowMs:    10_000,
		CadenceMinKeystrokes:  10,
		CadenceMeanIntervalMs: 30,
		SuspiciousTrust:       70,
	}
}

// Penalty points per rule. The rules are independent and order-insensitive;
// all applicable penalties stack before the final clamp at zero.
const (
	penaltyBulkPaste  = 20
	penaltyRapidPaste = 30
	penaltyBotCadence = 50
	fullTrust         = 100
)

// Analyzer scores event logs against fixed penalty rules.
type Analyzer struct {
	thresholds Thresholds
}

// New returns an analyzer with default thresholds.
func New() *Analyzer {
	return &Analyzer{thresholds: DefaultThresholds()}
}

// NewWithThresholds returns an analyzer with custom penalty rules.
func NewWithThresholds(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Analyze scores the event log, starting from full trust and deducting per
// detected pattern. An empty log is fully trusted: absence of telemetry is
// not evidence of abuse.
func (a *Analyzer) Analyze(events []event.Event) Findings {
	findings := Findings{TrustScore: fullTrust, Flags: []string{}}
	if len(events) == 0 {
		return findings
	}

	var (
		pasteCount   int
		pasteChars   int
		firstPasteMs int64
		lastPasteMs  int64
		keystrokesMs []int64
	)
	for _, e := range events {
		switch e.Kind {
		case event.KindPaste:
			if pasteCount == 0 {
				firstPasteMs = e.Timestamp
			}
			lastPasteMs = e.Timestamp
			pasteCount++
			pasteChars += e.CharCount
		case event.KindKeystroke:
			keystrokesMs = append(keystrokesMs, e.Timestamp)
		}
	}

	score := fullTrust

	if a.isBulkDump(pasteCount, pasteChars) {
		score -= penaltyBulkPaste
		findings.Flags = append(findings.Flags, "bulk content dumping")
	}

	if pasteCount > a.thresholds.RapidPasteMinEvents && lastPasteMs-firstPasteMs < a.thresholds.RapidPasteWindowMs {
		score -= penaltyRapidPaste
		findings.Flags = append(findings.Flags, "rapid paste sequence")
	}

	if len(keystrokesMs) > a.thresholds.CadenceMinKeystrokes {
		if mean := meanIntervalMs(keystrokesMs); mean < a.thresholds.CadenceMeanIntervalMs {
			score -= penaltyBotCadence
			findings.Flags = append(findings.Flags, "superhuman typing cadence")
		}
	}

	if score < 0 {
		score = 0
	}
	findings.TrustScore = score
	findings.IsSuspicious = score < a.thresholds.SuspiciousTrust
	return findings
}

// isBulkDump reports whether pasted volume amounts to content dumping:
// either a large volume delivered in very few events, or sustained pasting
// of large chunks.
func (a *Analyzer) isBulkDump(pasteCount, pasteChars int) bool {
	if pasteChars <= a.thresholds.BulkPasteChars || pasteCount == 0 {
		return false
	}
	if pasteCount < a.thresholds.BulkPasteMaxEvents {
		return true
	}
	return pasteChars/pasteCount >= a.thresholds.BulkPasteChunkChars
}

// meanIntervalMs is the mean gap between consecutive timestamps.
func meanIntervalMs(timestamps []int64) float64 {
	if len(timestamps) < 2 {
		return 0
	}
	var total int64
	for i := 1; i < len(timestamps); i++ {
		total += timestamps[i] - timestamps[i-1]
	}
	return float64(total) / float64(len(timestamps)-1)
}

// Describe renders the trust deficit for policy reasons.
func Describe(f Findings) string {
	return fmt.Sprintf("suspicious authoring behavior (trust deficit %d)", fullTrust-f.TrustScore)
}
