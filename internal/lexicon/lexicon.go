// Package lexicon holds the fixed phrase lists and the reference corpus used
// by the content analyzers. Everything here is established once at startup
// and never mutated, so concurrent reads from any number of simultaneous
// validation calls are safe without locks.
package lexicon

// TransitionPhrases are formal connective phrases whose density correlates
// with generated prose. Matching is case-insensitive substring matching.
var TransitionPhrases = []string{
	"furthermore",
	"moreover",
	"in conclusion",
	"additionally",
	"consequently",
	"nevertheless",
	"nonetheless",
	"in summary",
	"to summarize",
	"on the other hand",
	"in addition",
	"as a result",
	"therefore",
	"notably",
	"significantly",
	"in essence",
	"ultimately",
	"first and foremost",
	"it is important to note",
	"it is worth noting",
}

// FingerprintPhrases are stock phrases strongly associated with generated-text
// tooling output: disclosure phrases and hedging boilerplate. Each distinct
// phrase found is a high-confidence signal on its own.
var FingerprintPhrases = []string{
	"as an ai language model",
	"as a large language model",
	"i do not have personal opinions",
	"i don't have access to real-time",
	"it's important to remember that",
	"it is crucial to understand",
	"in today's fast-paced world",
	"in the ever-evolving landscape",
	"delve into the intricacies",
	"unlock the full potential",
	"navigate the complexities",
	"a rich tapestry of",
}

// CorpusEntry is one known source text in the reference corpus.
type CorpusEntry struct {
	ID   string
	Text string
}

// ReferenceCorpus is the fixed set of known sources scanned for overlap.
// Entries are illustrative published passages; IDs are stable and appear in
// similarity match reports.
var ReferenceCorpus = []CorpusEntry{
	{
		ID:   "ref-001",
		Text: "The quick brown fox jumps over the lazy dog while the patient observer takes careful notes about each movement in the garden.",
	},
	{
		ID:   "ref-002",
		Text: "Climate change represents one of the most significant challenges facing humanity today, with rising temperatures affecting ecosystems across every continent.",
	},
	{
		ID:   "ref-003",
		Text: "The industrial revolution transformed manufacturing processes through mechanization, fundamentally altering the relationship between labor and production output.",
	},
	{
		ID:   "ref-004",
		Text: "Effective communication requires active listening, clear articulation of ideas, and a willingness to understand perspectives different from your own.",
	},
	{
		ID:   "ref-005",
		Text: "The human brain contains approximately eighty six billion neurons, each forming thousands of connections that together produce thought and memory.",
	},
}
