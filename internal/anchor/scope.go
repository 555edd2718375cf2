package anchor

import "sync"

// Context keys used to gate menu items and keybindings per-anchor
const (
	KeyVariant       = "anchorVariant"
	KeyIsFolder      = "anchorIsFolder"
	KeyHasDefinition = "anchorHasDefinitionProvider"
	KeyHasReference  = "anchorHasReferenceProvider"
)

// ContextScope is a nested key-value evaluation environment. A child scope
// shadows its parent for the keys it sets; lookups walk the parent chain.
type ContextScope struct {
	mu     sync.RWMutex
	parent *ContextScope
	values map[string]any
}

// NewContextScope creates a root scope
func NewContextScope() *ContextScope {
	return &ContextScope{values: make(map[string]any)}
}

// NewChild creates a scope that shadows this one
func (s *ContextScope) NewChild() *ContextScope {
	return &ContextScope{parent: s, values: make(map[string]any)}
}

// Set binds a key in this scope, shadowing any parent binding
func (s *ContextScope) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// Get resolves a key against this scope and its ancestors
func (s *ContextScope) Get(key string) (any, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		scope.mu.RLock()
		v, ok := scope.values[key]
		scope.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// GetBool resolves a key as a boolean, defaulting to false
func (s *ContextScope) GetBool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetString resolves a key as a string, defaulting to ""
func (s *ContextScope) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}
