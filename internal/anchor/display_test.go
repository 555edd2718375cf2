package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatanchor/pkg/types"
)

func deriveFor(t *testing.T, ref types.InlineReference) DisplayData {
	t.Helper()
	classified, err := Classify(ref)
	require.NoError(t, err)
	return DeriveDisplay(classified, fakeIcons{}, fakeLabels{})
}

func TestDeriveDisplayResource(t *testing.T) {
	tests := []struct {
		name           string
		uri            string
		rng            *types.LineRange
		expectedLabel  string
		expectedTarget string
	}{
		{
			name:           "Whole file reference",
			uri:            "file:///a/b.txt",
			rng:            nil,
			expectedLabel:  "b.txt",
			expectedTarget: "file:///a/b.txt",
		},
		{
			name:           "Sub-range reference",
			uri:            "file:///a/b.txt",
			rng:            &types.LineRange{StartLine: 3, EndLine: 5},
			expectedLabel:  "b.txt#3-5",
			expectedTarget: "file:///a/b.txt#3-5",
		},
		{
			name:           "Single line range",
			uri:            "file:///a/b.txt",
			rng:            &types.LineRange{StartLine: 7, EndLine: 7},
			expectedLabel:  "b.txt#7-7",
			expectedTarget: "file:///a/b.txt#7-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := deriveFor(t, resourceRef(tt.uri, tt.rng))
			assert.Equal(t, tt.expectedLabel, display.Label)
			assert.Equal(t, tt.expectedTarget, display.LinkTarget)
		})
	}
}

func TestDeriveDisplayResourceIcons(t *testing.T) {
	file := deriveFor(t, resourceRef("file:///a/b.txt", nil))
	assert.Equal(t, []string{"codicon", "codicon-file"}, file.IconClasses)

	folder := deriveFor(t, resourceRef("file:///a/src/", nil))
	assert.Equal(t, []string{"codicon", "codicon-folder"}, folder.IconClasses)
}

func TestDeriveDisplaySymbol(t *testing.T) {
	tests := []struct {
		name         string
		symbolName   string
		kind         int
		expectedIcon string
	}{
		{
			name:         "Function symbol",
			symbolName:   "ParseConfig",
			kind:         12,
			expectedIcon: "codicon-symbol-function",
		},
		{
			name:         "Class symbol",
			symbolName:   "Server",
			kind:         5,
			expectedIcon: "codicon-symbol-class",
		},
		{
			name:         "Variable symbol",
			symbolName:   "maxRetries",
			kind:         13,
			expectedIcon: "codicon-symbol-variable",
		},
		{
			name:         "Unknown kind falls back",
			symbolName:   "mystery",
			kind:         999,
			expectedIcon: "codicon-symbol-misc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			display := deriveFor(t, symbolRef(tt.symbolName, tt.kind, "file:///a/s.go"))
			assert.Equal(t, tt.symbolName, display.Label, "symbol label must be the name verbatim")
			assert.Contains(t, display.IconClasses, "codicon")
			assert.Contains(t, display.IconClasses, tt.expectedIcon)
			assert.Equal(t, "file:///a/s.go", display.LinkTarget, "symbol link target carries no fragment")
		})
	}
}

func TestDeriveDisplayIsDeterministic(t *testing.T) {
	ref := resourceRef("file:///a/b.txt", &types.LineRange{StartLine: 3, EndLine: 5})

	first := deriveFor(t, ref)
	second := deriveFor(t, ref)

	assert.Equal(t, first, second)
}

func TestSymbolKindIcon(t *testing.T) {
	assert.Equal(t, "symbol-struct", SymbolKindIcon(23))
	assert.Equal(t, "symbol-interface", SymbolKindIcon(11))
	assert.Equal(t, "symbol-misc", SymbolKindIcon(0))
	assert.Equal(t, "symbol-misc", SymbolKindIcon(-1))
}
