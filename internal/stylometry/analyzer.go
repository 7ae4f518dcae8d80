// Package stylometry scores a text sample for stylistic signatures associated
// with generated prose. The analyzer is a pure function over its input: no
// I/O, no shared mutable state.
package stylometry

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"integrityd/internal/lexicon"
)

// Confidence tiers for the AI-likelihood score.
// There is deliberately no "low" tier: scores at or below the likely-AI
// threshold report zero findings rather than a low-confidence positive.
const (
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Findings is the result of a single AI-likelihood analysis.
type Findings struct {
	Score      int      `json:"score"`
	IsLikelyAI bool     `json:"is_likely_ai"`
	Confidence string   `json:"confidence"`
	Factors    []string `json:"factors"`
}

// Thresholds control the scoring bands. Defaults reproduce the production
// policy; overrides come from the config layer.
type Thresholds struct {
	// MinTextLen gates analysis. Shorter samples score zero: a fragment
	// carries too little rhythm to measure.
	MinTextLen int

	// UniformCoV and ModerateCoV are the coefficient-of-variation bands for
	// sentence-length burstiness. CoV below UniformCoV scores the full
	// burstiness penalty; below ModerateCoV, half credit.
	UniformCoV  float64
	ModerateCoV float64

	// TransitionDenseRate and TransitionModerateRate are transition phrases
	// per sentence.
	TransitionDenseRate    float64
	TransitionModerateRate float64

	// AvgWordLen is the mean token length above which vocabulary is
	// considered unusually complex.
	AvgWordLen float64

	// LikelyAIScore and HighConfidenceScore are the verdict bands over the
	// final clamped score.
	LikelyAIScore       int
	HighConfidenceScore int
}

// DefaultThresholds returns the production scoring bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTextLen:             50,
		UniformCoV:             0.35,
		ModerateCoV:            0.5,
		TransitionDenseRate:    0.25,
		TransitionModerateRate: 0.15,
		AvgWordLen:             6.5,
		LikelyAIScore:          40,
		HighConfidenceScore:    70,
	}
}

// Score contributions per signal.
const (
	pointsUniformRhythm     = 30
	pointsModerateRhythm    = 15
	pointsDenseTransitions  = 25
	pointsSomeTransitions   = 15
	pointsFingerprintPhrase = 20
	pointsComplexVocabulary = 10
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	wordFinder    = regexp.MustCompile(`[a-z0-9']+`)
)

// Analyzer scores text samples against fixed phrase lists and thresholds.
// The zero value is not usable; construct with New.
type Analyzer struct {
	thresholds Thresholds
}

// New returns an analyzer with default thresholds.
func New() *Analyzer {
	return &Analyzer{thresholds: DefaultThresholds()}
}

// NewWithThresholds returns an analyzer with custom scoring bands.
func NewWithThresholds(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Analyze scores the given text for generated-prose signatures.
// Samples shorter than the minimum length return a zero score with no
// factors; brevity is not evidence either way.
func (a *Analyzer) Analyze(text string) Findings {
	findings := Findings{Confidence: ConfidenceMedium, Factors: []string{}}
	if len(text) < a.thresholds.MinTextLen {
		return findings
	}

	lower := strings.ToLower(text)
	sentences := splitSentences(lower)
	words := wordFinder.FindAllString(lower, -1)

	score := 0

	// Burstiness: natural prose varies sentence length; generated prose
	// tends toward a uniform rhythm.
	cov := sentenceLengthCoV(sentences)
	switch {
	case cov < a.thresholds.UniformCoV:
		score += pointsUniformRhythm
		findings.Factors = append(findings.Factors, "uniform sentence rhythm")
	case cov < a.thresholds.ModerateCoV:
		score += pointsModerateRhythm
	}

	// Transition-phrase density over sentence count.
	transitions := countOccurrences(lower, lexicon.TransitionPhrases)
	density := float64(transitions) / float64(maxInt(1, len(sentences)))
	switch {
	case density > a.thresholds.TransitionDenseRate:
		score += pointsDenseTransitions
		findings.Factors = append(findings.Factors, fmt.Sprintf("%d formal transition phrases", transitions))
	case density > a.thresholds.TransitionModerateRate:
		score += pointsSomeTransitions
	}

	// Fingerprint phrases: each distinct hit is additive. The final clamp is
	// the only cap.
	for _, phrase := range lexicon.FingerprintPhrases {
		if strings.Contains(lower, phrase) {
			score += pointsFingerprintPhrase
			findings.Factors = append(findings.Factors, fmt.Sprintf("fingerprint phrase: %q", phrase))
		}
	}

	// Vocabulary complexity.
	if meanTokenLength(words) > a.thresholds.AvgWordLen {
		score += pointsComplexVocabulary
		findings.Factors = append(findings.Factors, "elevated vocabulary complexity")
	}

	if score > 100 {
		score = 100
	}
	findings.Score = score
	findings.IsLikelyAI = score > a.thresholds.LikelyAIScore
	if score > a.thresholds.HighConfidenceScore {
		findings.Confidence = ConfidenceHigh
	}
	return findings
}

// splitSentences breaks text on terminal punctuation, dropping empty parts.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentenceLengthCoV computes the coefficient of variation (stddev/mean) of
// per-sentence word counts. Returns 0 when there are no sentences or the
// mean is zero.
func sentenceLengthCoV(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(len(wordFinder.FindAllString(s, -1)))
	}
	mean, sd := meanStd(lengths)
	if mean == 0 {
		return 0
	}
	return sd / mean
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// countOccurrences sums substring occurrences of every phrase in text.
func countOccurrences(text string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += strings.Count(text, p)
	}
	return total
}

func meanTokenLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len(w)
	}
	return float64(total) / float64(len(words))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
