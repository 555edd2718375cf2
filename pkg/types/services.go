package types

import "context"

// Disposable releases a scoped acquisition (listener, tooltip, subscription)
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a plain function to the Disposable interface
type DisposableFunc func()

// Dispose invokes the wrapped function
func (f DisposableFunc) Dispose() { f() }

// Element is the host-provided visual element an anchor binds to. Handlers
// registered on it are released through the returned Disposable.
type Element interface {
	OnClick(fn func()) Disposable
	OnContextMenu(fn func(x, y int)) Disposable
	OnDragStart(fn func(transfer DragDataTransfer)) Disposable
}

// DragDataTransfer is the external sink populated on drag start
type DragDataTransfer interface {
	SetResources(uris []string)
	SetDragImage(el Element, x, y int)
}

// ProviderRegistry exposes language-feature provider availability for a
// document model, plus change notifications for each provider family.
type ProviderRegistry interface {
	HasDefinitionProvider(uri string) bool
	HasReferenceProvider(uri string) bool
	OnDidChangeDefinitionProviders(fn func()) Disposable
	OnDidChangeReferenceProviders(fn func()) Disposable
}

// FileStat is the subset of resource metadata the anchor cares about
type FileStat struct {
	IsDirectory bool
}

// ResourceMetadata resolves existence and kind for a resource URI
type ResourceMetadata interface {
	Stat(ctx context.Context, uri string) (FileStat, error)
}

// IconResolver maps a resource URI to an ordered set of icon class identifiers
type IconResolver interface {
	ResourceIcons(uri string) []string
}

// LabelService renders URIs for humans
type LabelService interface {
	BaseName(uri string) string
	RelativePath(uri string) string
}

// ClipboardSink accepts a list of resource URIs for the system clipboard
type ClipboardSink interface {
	WriteResources(uris []string) error
}

// MenuItem is a single rendered context-menu entry with its bound effect
type MenuItem struct {
	ID    string
	Title string
	Run   func(ctx context.Context) error
}

// MenuHost renders an ordered list of menu items at an anchor point
type MenuHost interface {
	ShowMenu(el Element, x, y int, items []MenuItem)
}

// HoverHost attaches a managed tooltip to an element. The returned Disposable
// tears the tooltip down.
type HoverHost interface {
	AttachHover(el Element, text string) Disposable
}

// NavigationHost opens resources and invokes editor navigation commands
type NavigationHost interface {
	Open(ctx context.Context, loc Location) error
	OpenToSide(ctx context.Context, uri string, selection *LineRange) error
	PeekDefinition(ctx context.Context, loc Location) error
	FindReferences(ctx context.Context, loc Location) error
}

// ChatSurface attaches a resource as chat context to the focused chat input.
// Attach reports false when no chat surface currently holds focus.
type ChatSurface interface {
	AttachResource(uri string, rng *LineRange) bool
}

// TelemetrySink accepts fire-and-forget named events
type TelemetrySink interface {
	Publish(event string, props map[string]string)
}
