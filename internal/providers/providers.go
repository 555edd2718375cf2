package providers

import (
	"sync"

	"chatanchor/internal/lsp"
	"chatanchor/pkg/types"
)

var _ types.ProviderRegistry = (*Registry)(nil)

// CapabilitySource reports provider availability for loaded documents. The
// gopls client satisfies this.
type CapabilitySource interface {
	Capabilities() lsp.Capabilities
	IsOpen(uri string) bool
}

// Registry answers has-definition/has-reference provider queries from a
// capability source and fans change notifications out to subscribers. The
// definition and reference families have independent subscriber lists, so a
// change in one never refreshes flags derived from the other.
type Registry struct {
	mu      sync.Mutex
	source  CapabilitySource
	nextSub int
	defSubs map[int]func()
	refSubs map[int]func()
}

// NewRegistry creates a registry over the given source; source may be nil
// until a language client is attached.
func NewRegistry(source CapabilitySource) *Registry {
	return &Registry{
		source:  source,
		defSubs: make(map[int]func()),
		refSubs: make(map[int]func()),
	}
}

// AttachSource swaps the capability source and signals both families
func (r *Registry) AttachSource(source CapabilitySource) {
	r.mu.Lock()
	r.source = source
	r.mu.Unlock()
	r.NotifyDefinitionProvidersChanged()
	r.NotifyReferenceProvidersChanged()
}

// HasDefinitionProvider reports whether a definition provider covers the
// URI's document model. An unloaded document has no provider.
func (r *Registry) HasDefinitionProvider(uri string) bool {
	r.mu.Lock()
	source := r.source
	r.mu.Unlock()
	return source != nil && source.IsOpen(uri) && source.Capabilities().Definition
}

// HasReferenceProvider reports whether a reference provider covers the URI's
// document model.
func (r *Registry) HasReferenceProvider(uri string) bool {
	r.mu.Lock()
	source := r.source
	r.mu.Unlock()
	return source != nil && source.IsOpen(uri) && source.Capabilities().References
}

// OnDidChangeDefinitionProviders subscribes to definition-provider changes
func (r *Registry) OnDidChangeDefinitionProviders(fn func()) types.Disposable {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.defSubs[id] = fn
	r.mu.Unlock()
	return types.DisposableFunc(func() {
		r.mu.Lock()
		delete(r.defSubs, id)
		r.mu.Unlock()
	})
}

// OnDidChangeReferenceProviders subscribes to reference-provider changes
func (r *Registry) OnDidChangeReferenceProviders(fn func()) types.Disposable {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.refSubs[id] = fn
	r.mu.Unlock()
	return types.DisposableFunc(func() {
		r.mu.Lock()
		delete(r.refSubs, id)
		r.mu.Unlock()
	})
}

// NotifyDefinitionProvidersChanged signals definition-provider subscribers.
// Called when documents open or the language client restarts.
func (r *Registry) NotifyDefinitionProvidersChanged() {
	for _, fn := range r.snapshot(true) {
		fn()
	}
}

// NotifyReferenceProvidersChanged signals reference-provider subscribers
func (r *Registry) NotifyReferenceProvidersChanged() {
	for _, fn := range r.snapshot(false) {
		fn()
	}
}

func (r *Registry) snapshot(definition bool) []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.refSubs
	if definition {
		subs = r.defSubs
	}
	out := make([]func(), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}
