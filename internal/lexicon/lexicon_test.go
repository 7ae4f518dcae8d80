package lexicon

import (
	"strings"
	"testing"
)

func TestPhraseListsAreLowercase(t *testing.T) {
	for _, list := range [][]string{TransitionPhrases, FingerprintPhrases} {
		for _, phrase := range list {
			if phrase != strings.ToLower(phrase) {
				t.Errorf("phrase %q is not lowercase", phrase)
			}
			if phrase != strings.TrimSpace(phrase) {
				t.Errorf("phrase %q has surrounding whitespace", phrase)
			}
		}
	}
}

func TestPhraseListsHaveNoDuplicates(t *testing.T) {
	for _, list := range [][]string{TransitionPhrases, FingerprintPhrases} {
		seen := make(map[string]bool, len(list))
		for _, phrase := range list {
			if seen[phrase] {
				t.Errorf("duplicate phrase %q", phrase)
			}
			seen[phrase] = true
		}
	}
}

func TestReferenceCorpusEntries(t *testing.T) {
	seen := make(map[string]bool, len(ReferenceCorpus))
	for _, entry := range ReferenceCorpus {
		if entry.ID == "" {
			t.Error("corpus entry with empty ID")
		}
		if seen[entry.ID] {
			t.Errorf("duplicate corpus ID %q", entry.ID)
		}
		seen[entry.ID] = true
		// Entries must be long enough for the literal-copy check to apply
		// when a submission contains them verbatim.
		if len(entry.Text) <= 50 {
			t.Errorf("corpus entry %s too short: %d chars", entry.ID, len(entry.Text))
		}
	}
}
