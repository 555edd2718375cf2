package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatanchor/pkg/types"
)

func TestProviderAdvertised(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{
			name:     "Boolean true",
			raw:      `true`,
			expected: true,
		},
		{
			name:     "Boolean false",
			raw:      `false`,
			expected: false,
		},
		{
			name:     "Registration options object",
			raw:      `{"workDoneProgress":true}`,
			expected: true,
		},
		{
			name:     "Null",
			raw:      `null`,
			expected: false,
		},
		{
			name:     "Absent",
			raw:      ``,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, providerAdvertised(json.RawMessage(tt.raw)))
		})
	}
}

func TestDecodeLocations(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []types.Location
	}{
		{
			name:     "Null response",
			response: `null`,
			expected: []types.Location{},
		},
		{
			name:     "Location array",
			response: `[{"uri":"file:///a/run.go","range":{"start":{"line":9,"character":1},"end":{"line":9,"character":4}}}]`,
			expected: []types.Location{{
				URI: "file:///a/run.go",
				Range: types.Range{
					Start: types.Position{Line: 9, Character: 1},
					End:   types.Position{Line: 9, Character: 4},
				},
			}},
		},
		{
			name:     "Single location",
			response: `{"uri":"file:///a/run.go","range":{"start":{"line":2,"character":0},"end":{"line":2,"character":3}}}`,
			expected: []types.Location{{
				URI: "file:///a/run.go",
				Range: types.Range{
					Start: types.Position{Line: 2, Character: 0},
					End:   types.Position{Line: 2, Character: 3},
				},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations, err := decodeLocations(json.RawMessage(tt.response))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, locations)
		})
	}
}

func TestDecodeLocationsMalformed(t *testing.T) {
	_, err := decodeLocations(json.RawMessage(`42`))
	assert.Error(t, err)
}

func TestClientOpenDocsTracking(t *testing.T) {
	client := NewClient("")

	assert.False(t, client.IsOpen("file:///a/main.go"))

	client.mu.Lock()
	client.openDocs["file:///a/main.go"] = true
	client.mu.Unlock()

	assert.True(t, client.IsOpen("file:///a/main.go"))
	assert.False(t, client.IsOpen("file:///a/other.go"))
}
