package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	modes := []string{"plain", "pretty", "json", "ndjson"}
	assert.Nil(t, Suggest("", modes, 2))
	assert.Nil(t, Suggest("xyz", modes, 3))
	assert.Equal(t, []string{"json"}, Suggest("json", modes, 1))
	assert.ElementsMatch(t, []string{"json", "ndjson"}, Suggest("jsn", modes, 0))
}

func TestSuggestKeepsSpelling(t *testing.T) {
	levels := []string{"DEBUG", "INFO", "WARNING"}
	assert.Equal(t, []string{"WARNING"}, Suggest("warnig", levels, 1))
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, "; did you mean pretty?", DidYouMean("prty", []string{"plain", "pretty"}))
	assert.Equal(t, "", DidYouMean("zzz", []string{"plain", "pretty"}))
	assert.Equal(t, "", DidYouMean("", []string{"plain"}))
}
