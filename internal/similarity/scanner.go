// Package similarity detects overlap between a text sample and a fixed
// reference corpus using word-shingle set similarity.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"integrityd/internal/lexicon"
)

// Findings is the result of a single similarity scan.
type Findings struct {
	Score   int     `json:"score"`
	IsMatch bool    `json:"is_match"`
	Matches []Match `json:"matches"`
}

// Match records overlap with one corpus entry.
type Match struct {
	SourceID      string `json:"source_id"`
	Preview       string `json:"preview"`
	SimilarityPct int    `json:"similarity_pct"`
	Exact         bool   `json:"exact,omitempty"`
}

// Thresholds control scan gating and reporting.
type Thresholds struct {
	// MinTextLen gates the scan; shorter samples score zero.
	MinTextLen int

	// ShingleSize is the number of consecutive words per shingle.
	ShingleSize int

	// ReportPct is the similarity percentage above which a per-source match
	// is recorded.
	ReportPct float64

	// MatchScore is the overall score above which the sample is treated as
	// matching a known source.
	MatchScore int

	// ExactPrefixLen and ExactMinTextLen drive the verbatim-copy override:
	// a sample longer than ExactMinTextLen containing the first
	// ExactPrefixLen characters of a corpus entry is an exact copy, however
	// much padding surrounds it.
	ExactPrefixLen  int
	ExactMinTextLen int
}

// DefaultThresholds returns the production scan parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTextLen:      20,
		ShingleSize:     3,
		ReportPct:       5,
		MatchScore:      15,
		ExactPrefixLen:  30,
		ExactMinTextLen: 50,
	}
}

const previewLen = 50

var wordFinder = regexp.MustCompile(`[a-z0-9']+`)

// Scanner compares text samples against a reference corpus. Corpus shingle
// sets are computed once at construction and shared read-only afterwards.
type Scanner struct {
	thresholds Thresholds
	corpus     []corpusIndex
}

type corpusIndex struct {
	entry    lexicon.CorpusEntry
	shingles map[string]struct{}
}

// New returns a scanner over the fixed reference corpus.
func New() *Scanner {
	return NewWithCorpus(DefaultThresholds(), lexicon.ReferenceCorpus)
}

// NewWithThresholds returns a scanner over the fixed reference corpus with
// custom scan parameters.
func NewWithThresholds(t Thresholds) *Scanner {
	return NewWithCorpus(t, lexicon.ReferenceCorpus)
}

// NewWithCorpus returns a scanner over a caller-supplied corpus, used by
// tests and by deployments with their own known-source set.
func NewWithCorpus(t Thresholds, corpus []lexicon.CorpusEntry) *Scanner {
	s := &Scanner{thresholds: t}
	for _, entry := range corpus {
		s.corpus = append(s.corpus, corpusIndex{
			entry:    entry,
			shingles: shingleSet(entry.Text, t.ShingleSize),
		})
	}
	return s
}

// Scan compares the sample against every corpus entry and reports all
// overlaps above the reporting threshold, sorted by similarity descending.
func (s *Scanner) Scan(text string) Findings {
	findings := Findings{Matches: []Match{}}
	if len(text) < s.thresholds.MinTextLen {
		return findings
	}

	sample := shingleSet(text, s.thresholds.ShingleSize)
	maxSim := 0.0
	bySource := make(map[string]int, len(s.corpus)) // source ID -> index into findings.Matches

	for _, idx := range s.corpus {
		sim := jaccardPct(sample, idx.shingles)
		if sim > maxSim {
			maxSim = sim
		}
		if sim > s.thresholds.ReportPct {
			bySource[idx.entry.ID] = len(findings.Matches)
			findings.Matches = append(findings.Matches, Match{
				SourceID:      idx.entry.ID,
				Preview:       preview(idx.entry.Text),
				SimilarityPct: int(math.Round(sim)),
			})
		}
	}

	// Verbatim-copy override: shingling under-scores a copied passage buried
	// in heavy padding, but a literal prefix hit is unambiguous.
	if len(text) > s.thresholds.ExactMinTextLen {
		for _, idx := range s.corpus {
			prefix := idx.entry.Text
			if len(prefix) > s.thresholds.ExactPrefixLen {
				prefix = prefix[:s.thresholds.ExactPrefixLen]
			}
			if !strings.Contains(text, prefix) {
				continue
			}
			maxSim = 100
			if i, ok := bySource[idx.entry.ID]; ok {
				findings.Matches[i].SimilarityPct = 100
				findings.Matches[i].Exact = true
			} else {
				bySource[idx.entry.ID] = len(findings.Matches)
				findings.Matches = append(findings.Matches, Match{
					SourceID:      idx.entry.ID,
					Preview:       preview(idx.entry.Text),
					SimilarityPct: 100,
					Exact:         true,
				})
			}
		}
	}

	sort.SliceStable(findings.Matches, func(i, j int) bool {
		return findings.Matches[i].SimilarityPct > findings.Matches[j].SimilarityPct
	})

	score := int(math.Round(maxSim))
	if score > 100 {
		score = 100
	}
	findings.Score = score
	findings.IsMatch = score > s.thresholds.MatchScore
	return findings
}

// shingleSet builds the set of contiguous n-word shingles from lowercase
// tokens. With fewer than n tokens the set degenerates to the whole text.
func shingleSet(text string, n int) map[string]struct{} {
	words := wordFinder.FindAllString(strings.ToLower(text), -1)
	out := map[string]struct{}{}
	if len(words) < n {
		out[strings.ToLower(strings.TrimSpace(text))] = struct{}{}
		return out
	}
	for i := 0; i+n <= len(words); i++ {
		out[strings.Join(words[i:i+n], " ")] = struct{}{}
	}
	return out
}

// jaccardPct is |intersection| / |union| as a percentage.
func jaccardPct(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union) * 100
}

func preview(source string) string {
	if len(source) <= previewLen {
		return source
	}
	return source[:previewLen] + "…"
}
