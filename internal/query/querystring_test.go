package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeQueryDropsClearedKeys(t *testing.T) {
	current := url.Values{"a": {"1"}, "b": {"2"}}
	got := MergeQuery(current, map[string]string{"b": ""})
	assert.Equal(t, "a=1", got)
}

func TestMergeQueryLastWriteWins(t *testing.T) {
	current := url.Values{"page": {"1"}, "modality": {"CT"}}
	got := MergeQuery(current, map[string]string{"page": "3"})

	parsed, err := url.ParseQuery(got)
	assert.NoError(t, err)
	assert.Equal(t, "3", parsed.Get("page"))
	assert.Equal(t, "CT", parsed.Get("modality"))
}

func TestMergeQueryNeverSerializesEmptyValues(t *testing.T) {
	current := url.Values{"a": {""}, "b": {"2"}}
	got := MergeQuery(current, map[string]string{"c": ""})
	assert.Equal(t, "b=2", got)
}

func TestMergeQueryAssociative(t *testing.T) {
	current := url.Values{"a": {"1"}}

	// Apply two change sets in sequence.
	step1, err := url.ParseQuery(MergeQuery(current, map[string]string{"b": "2"}))
	assert.NoError(t, err)
	sequential := MergeQuery(step1, map[string]string{"a": "9"})

	// Apply them as one batch.
	batched := MergeQuery(current, map[string]string{"b": "2", "a": "9"})

	assert.Equal(t, batched, sequential)
}

func TestMergeQueryReset(t *testing.T) {
	current := url.Values{"a": {"1"}, "b": {"2"}}
	got := MergeQuery(current, map[string]string{"a": "", "b": ""})
	assert.Equal(t, "", got)

	assert.Equal(t, "", MergeQuery(nil, nil))
}

func TestMergeQueryEncodesSpecialCharacters(t *testing.T) {
	got := MergeQuery(nil, map[string]string{"patient_id": "DOE^JOHN"})
	parsed, err := url.ParseQuery(got)
	assert.NoError(t, err)
	assert.Equal(t, "DOE^JOHN", parsed.Get("patient_id"))
}
