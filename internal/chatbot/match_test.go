package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchField_ExactContainment(t *testing.T) {
	synonyms, ok := matchField("what is the blood group of the officer")
	require.True(t, ok)
	assert.Equal(t, lexicon["blood group"], synonyms)
}

func TestMatchField_LongestKeyWins(t *testing.T) {
	// "family details" and "family" are both present; the more specific
	// key must win.
	synonyms, ok := matchField("show family details")
	require.True(t, ok)
	assert.Equal(t, lexicon["family details"], synonyms)
}

func TestMatchField_FuzzyFallback(t *testing.T) {
	// Misspelled, no exact containment, but well above the threshold.
	synonyms, ok := matchField("blood grop")
	require.True(t, ok)
	assert.Equal(t, lexicon["blood group"], synonyms)
}

func TestMatchField_NoMatch(t *testing.T) {
	_, ok := matchField("zzzzqqqq")
	assert.False(t, ok)
}

func TestLexiconKeys_LongestFirst(t *testing.T) {
	require.NotEmpty(t, lexiconKeys)
	for i := 1; i < len(lexiconKeys); i++ {
		assert.GreaterOrEqual(t, len(lexiconKeys[i-1]), len(lexiconKeys[i]))
	}
}
