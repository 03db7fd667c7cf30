package reconcile

import (
	"testing"

	"meterrecon/domain/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLookup(t *testing.T) {
	rows := []recon.Row{
		{"serial": " ABC123 ", "usage": "UP-1"},
		{"serial": "", "usage": "UP-2"},     // blank key skipped
		{"serial": "DEF456", "usage": " "},  // blank usage skipped
		{"serial": "abc123", "usage": "UP-3"}, // duplicate key, last wins
	}
	lookup := BuildLookup(rows, "serial", "usage")

	require.Len(t, lookup, 1)
	assert.Equal(t, "UP-3", lookup["abc123"])
}

func TestJoin(t *testing.T) {
	lookup := map[string]string{"abc123": "UP-1"}
	readings := []recon.Row{
		{"meter": "ABC123", "value": "10"},
		{"meter": "  "},          // blank join key dropped
		{"meter": "XYZ999"},      // no match
	}

	out := Join(readings, "meter", lookup)
	require.Len(t, out, 2)

	assert.Equal(t, "UP-1", out[0][recon.UsagePointField], "lookup is case-insensitive")
	assert.Equal(t, "10", out[0]["value"], "original fields survive")
	assert.Equal(t, recon.NotFound, out[1][recon.UsagePointField])
}

func TestJoinDoesNotMutateInput(t *testing.T) {
	readings := []recon.Row{{"meter": "M1"}}
	Join(readings, "meter", nil)
	_, tainted := readings[0][recon.UsagePointField]
	assert.False(t, tainted)
}
