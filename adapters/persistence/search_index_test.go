package persistence

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMatchedTerm_PreservesNameCasing(t *testing.T) {
	assert.Equal(t, "Batman", matchedTerm("Batman Begins", "batman"))
}

func TestMatchedTerm_NonSubstringFallsBackToTerm(t *testing.T) {
	assert.Equal(t, "dark knight", matchedTerm("Batman Begins", "dark knight"))
}

func TestMatchedTerm_CaseMappingShrinksRune(t *testing.T) {
	// İ (U+0130, 2 bytes) lowercases to i + combining dot (3 bytes), so
	// offsets computed on the lowered name drift on the original.
	got := matchedTerm("İstanbul", "stanbul")
	assert.Equal(t, "stanbul", got)
	assert.True(t, utf8.ValidString(got))
}

func TestMatchedTerm_CaseMappingGrowsRune(t *testing.T) {
	// Ⱥ (U+023A, 2 bytes) lowercases to ⱥ (U+2C65, 3 bytes).
	var got string
	assert.NotPanics(t, func() { got = matchedTerm("Ⱥb", "ⱥb") })
	assert.Equal(t, "Ⱥb", got)
}

func TestMatchedTerm_MatchStartsAtMultibyteRune(t *testing.T) {
	assert.Equal(t, "İstanbul", matchedTerm("Welcome to İstanbul", "İSTANBUL"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_\\`, escapeLike(`100%_\`))
}
