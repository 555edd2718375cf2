package navigation

import (
	"context"
	"fmt"

	"chatanchor/pkg/types"
)

var _ types.NavigationHost = (*Host)(nil)

// Opener is the editor surface navigation lands in. The TUI supplies one.
type Opener interface {
	OpenFile(uri string, selection *types.LineRange, side bool) error
	ShowLocations(title string, locations []types.Location) error
}

// LanguageNavigator resolves definition and reference locations. The gopls
// client satisfies this.
type LanguageNavigator interface {
	OpenDocument(ctx context.Context, uri string) error
	Definition(ctx context.Context, uri string, line, character int) ([]types.Location, error)
	References(ctx context.Context, uri string, line, character int) ([]types.Location, error)
}

// Host implements anchor navigation over an opener and an optional language
// navigator. Without a navigator, peek and find-references degrade to plain
// opens.
type Host struct {
	navigator LanguageNavigator
	opener    Opener
}

// NewHost creates a navigation host
func NewHost(navigator LanguageNavigator, opener Opener) *Host {
	return &Host{navigator: navigator, opener: opener}
}

// Open opens a location's resource with its range selected
func (h *Host) Open(ctx context.Context, loc types.Location) error {
	return h.opener.OpenFile(loc.URI, selectionOf(loc), false)
}

// OpenToSide opens a resource in a new side-by-side view
func (h *Host) OpenToSide(ctx context.Context, uri string, selection *types.LineRange) error {
	return h.opener.OpenFile(uri, selection, true)
}

// PeekDefinition resolves the definition at the location and presents it
func (h *Host) PeekDefinition(ctx context.Context, loc types.Location) error {
	if h.navigator == nil {
		return nil
	}
	if err := h.navigator.OpenDocument(ctx, loc.URI); err != nil {
		return fmt.Errorf("failed to load document for definition peek: %w", err)
	}
	definitions, err := h.navigator.Definition(ctx, loc.URI, loc.Range.Start.Line, loc.Range.Start.Character)
	if err != nil {
		return fmt.Errorf("failed to resolve definition: %w", err)
	}
	if len(definitions) == 0 {
		return nil
	}
	return h.opener.ShowLocations("Definition", definitions)
}

// FindReferences resolves all references at the location and presents them
func (h *Host) FindReferences(ctx context.Context, loc types.Location) error {
	if h.navigator == nil {
		return nil
	}
	if err := h.navigator.OpenDocument(ctx, loc.URI); err != nil {
		return fmt.Errorf("failed to load document for references: %w", err)
	}
	references, err := h.navigator.References(ctx, loc.URI, loc.Range.Start.Line, loc.Range.Start.Character)
	if err != nil {
		return fmt.Errorf("failed to resolve references: %w", err)
	}
	if len(references) == 0 {
		return nil
	}
	return h.opener.ShowLocations("References", references)
}

// selectionOf converts a location's zero-based LSP range to a one-based
// display line range.
func selectionOf(loc types.Location) *types.LineRange {
	return &types.LineRange{
		StartLine: loc.Range.Start.Line + 1,
		EndLine:   loc.Range.End.Line + 1,
	}
}
