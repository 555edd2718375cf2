package fsmeta

import (
	"context"
	"fmt"
	"os"
	"strings"

	"chatanchor/pkg/types"
)

var _ types.ResourceMetadata = (*Service)(nil)

// Service resolves resource metadata from the local filesystem
type Service struct{}

// NewService creates a filesystem-backed metadata service
func NewService() *Service {
	return &Service{}
}

// Stat reports existence and kind for a file URI
func (s *Service) Stat(ctx context.Context, uri string) (types.FileStat, error) {
	if err := ctx.Err(); err != nil {
		return types.FileStat{}, err
	}

	p := strings.TrimPrefix(uri, "file://")
	info, err := os.Stat(p)
	if err != nil {
		return types.FileStat{}, fmt.Errorf("failed to stat %s: %w", uri, err)
	}
	return types.FileStat{IsDirectory: info.IsDir()}, nil
}
