package labels

import (
	"path"
	"path/filepath"
	"strings"

	"chatanchor/pkg/types"
)

var _ types.LabelService = (*Service)(nil)

// Service renders resource URIs for humans, relative to a workspace root
type Service struct {
	workspaceRoot string
}

// NewService creates a label service rooted at the given workspace
func NewService(workspaceRoot string) *Service {
	return &Service{workspaceRoot: workspaceRoot}
}

// BaseName returns the display basename of a URI. Trailing separators are
// ignored so folders label as their directory name.
func (s *Service) BaseName(uri string) string {
	p := strings.TrimSuffix(uriToPath(uri), "/")
	if p == "" {
		return "/"
	}
	return path.Base(p)
}

// RelativePath returns the human-readable path of a URI relative to the
// workspace root, falling back to the full path for outside resources.
func (s *Service) RelativePath(uri string) string {
	p := uriToPath(uri)
	if s.workspaceRoot == "" {
		return p
	}
	rel, err := filepath.Rel(s.workspaceRoot, strings.TrimSuffix(p, "/"))
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

// uriToPath strips the file scheme from a URI, leaving plain paths intact
func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
