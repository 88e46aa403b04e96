package chatbot

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Similarity acceptance thresholds on the 0-100 scale.
const (
	// fieldMatchThreshold is the minimum similarity for fuzzy field matching.
	fieldMatchThreshold = 60

	// nameMatchThreshold is the minimum similarity for fuzzy officer name
	// resolution.
	nameMatchThreshold = 70
)

// matchField resolves free text to a canonical topic's synonym set.
//
// Exact pass first: the longest canonical key contained in the lowered input
// wins. Only when no key is contained does it fall back to fuzzy matching of
// the whole input against the keys, accepted at fieldMatchThreshold or above.
func matchField(text string) ([]string, bool) {
	lowered := strings.ToLower(text)

	for _, key := range lexiconKeys {
		if strings.Contains(lowered, key) {
			return lexicon[key], true
		}
	}

	bestScore := 0
	bestKey := ""
	for _, key := range lexiconKeys {
		if score := fuzzy.Ratio(lowered, key); score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore >= fieldMatchThreshold {
		return lexicon[bestKey], true
	}
	return nil, false
}
