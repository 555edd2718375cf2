package clipboard

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"chatanchor/pkg/types"
)

var _ types.ClipboardSink = (*Sink)(nil)

// Sink writes resource URIs to the system clipboard, one per line
type Sink struct{}

// NewSink creates a system clipboard sink
func NewSink() *Sink {
	return &Sink{}
}

// WriteResources copies the URIs to the system clipboard
func (s *Sink) WriteResources(uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	if err := clipboard.WriteAll(strings.Join(uris, "\n")); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
