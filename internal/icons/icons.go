package icons

import (
	"path"
	"strings"

	"chatanchor/pkg/types"
)

var _ types.IconResolver = (*ThemeResolver)(nil)

// Extension to language icon suffixes for the built-in theme. Unlisted
// extensions fall back to the plain file icon.
var extensionIcons = map[string]string{
	"go":   "file-go",
	"mod":  "file-go-mod",
	"sum":  "file-go-mod",
	"md":   "file-markdown",
	"json": "file-json",
	"toml": "file-toml",
	"yaml": "file-yaml",
	"yml":  "file-yaml",
	"sh":   "file-shell",
	"py":   "file-python",
	"js":   "file-javascript",
	"ts":   "file-typescript",
	"rs":   "file-rust",
	"c":    "file-c",
	"h":    "file-c",
	"sql":  "file-sql",
	"txt":  "file-text",
}

// ThemeResolver maps resource URIs to ordered icon class sets for the
// built-in theme. A trailing separator denotes a folder.
type ThemeResolver struct{}

// NewThemeResolver creates the built-in icon resolver
func NewThemeResolver() *ThemeResolver {
	return &ThemeResolver{}
}

// ResourceIcons returns the icon classes for a resource URI
func (r *ThemeResolver) ResourceIcons(uri string) []string {
	p := strings.TrimPrefix(uri, "file://")
	if strings.HasSuffix(p, "/") {
		return []string{"codicon", "codicon-folder"}
	}

	ext := strings.TrimPrefix(path.Ext(p), ".")
	if icon, ok := extensionIcons[strings.ToLower(ext)]; ok {
		return []string{"codicon", "codicon-file", icon}
	}
	return []string{"codicon", "codicon-file"}
}
