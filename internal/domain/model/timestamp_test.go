package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampFormat(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 42_000, time.UTC)
	assert.Equal(t, "2026-03-04 05:06:07.000042 UTC", FormatTimestamp(ts))
}

func TestTimestampRoundTrip(t *testing.T) {
	// Microsecond-truncated instants must survive format -> parse exactly;
	// that is what exact-match submission lookups rely on.
	ts := time.Now().UTC().Truncate(time.Microsecond)

	parsed, err := ParseTimestamp(FormatTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts), "parsed %v != original %v", parsed, ts)

	// And the string form is stable across further round trips.
	assert.Equal(t, FormatTimestamp(ts), FormatTimestamp(parsed))
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "now", "2026-03-04", "2026-03-04 05:06:07"} {
		_, err := ParseTimestamp(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFileCollectionPut(t *testing.T) {
	var fc FileCollection
	fc.Put("a", []byte("1"))
	fc.Put("b", []byte("2"))
	fc.Put("a", []byte("3"))

	require.Len(t, fc, 2)
	assert.Equal(t, "a", fc[0].Path)
	assert.Equal(t, []byte("3"), fc[0].Content)
}

func TestFileCollectionClone(t *testing.T) {
	fc := FileCollection{{Path: "a", Content: []byte("abc")}}
	clone := fc.Clone()
	clone[0].Content[0] = 'x'
	assert.Equal(t, []byte("abc"), fc[0].Content)
}
