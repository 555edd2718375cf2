package anchor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"chatanchor/pkg/types"
)

// EventAnchorClick is the telemetry event fired when an anchor is clicked
const EventAnchorClick = "chat.inlineAnchor.click"

// Services bundles the host collaborators an anchor widget consumes. All
// fields are capability interfaces passed explicitly at construction; the
// widget holds no ambient service locator.
type Services struct {
	Providers types.ProviderRegistry
	Metadata  types.ResourceMetadata
	Icons     types.IconResolver
	Labels    types.LabelService
	Clipboard types.ClipboardSink
	Menus     types.MenuHost
	Hover     types.HoverHost
	Nav       types.NavigationHost
	Chat      types.ChatSurface
	Telemetry types.TelemetrySink
}

// Widget is a single inline anchor bound to one host element. Classification
// and display derivation happen synchronously in NewWidget, before any event
// listener is attached, so no handler ever observes a partially-initialized
// widget. Dispose releases every scoped acquisition and is idempotent.
type Widget struct {
	mu sync.Mutex

	ref      Classified
	display  DisplayData
	element  types.Element
	scope    *ContextScope
	focus    *FocusTracker
	registry *Registry
	services Services

	anchorID string
	isFolder bool
	hasDef   bool
	hasRef   bool

	disposed    bool
	disposables []types.Disposable
	statCancel  context.CancelFunc
}

// NewWidget classifies ref, derives its display data, and binds the anchor's
// interactions to el inside a child scope of parent. Malformed references
// fail fast with ErrMalformedReference.
func NewWidget(
	ref types.InlineReference,
	el types.Element,
	parent *ContextScope,
	focus *FocusTracker,
	registry *Registry,
	services Services,
) (*Widget, error) {
	classified, err := Classify(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to construct anchor widget: %w", err)
	}

	if parent == nil {
		parent = NewContextScope()
	}
	w := &Widget{
		ref:      classified,
		display:  DeriveDisplay(classified, services.Icons, services.Labels),
		element:  el,
		scope:    parent.NewChild(),
		focus:    focus,
		registry: registry,
		services: services,
	}
	w.scope.Set(KeyVariant, string(classified.Variant))

	switch classified.Variant {
	case VariantSymbol:
		w.bindProviderFlags()
	case VariantResource:
		// Synchronous default: a trailing separator denotes a folder. The
		// async stat refines this flag best-effort.
		w.isFolder = strings.HasSuffix(strings.TrimPrefix(classified.URI, "file://"), "/")
		w.scope.Set(KeyIsFolder, w.isFolder)
		w.startStatRefinement()
	}

	w.bindInteractions()

	return w, nil
}

// bindProviderFlags computes the two capability flags and subscribes each one
// to its own provider registry change event. The reference flag must react to
// reference-provider changes only, and likewise for definitions.
func (w *Widget) bindProviderFlags() {
	w.refreshDefinitionFlag()
	w.refreshReferenceFlag()

	if w.services.Providers == nil {
		return
	}
	w.disposables = append(w.disposables,
		w.services.Providers.OnDidChangeDefinitionProviders(w.refreshDefinitionFlag),
		w.services.Providers.OnDidChangeReferenceProviders(w.refreshReferenceFlag),
	)
}

func (w *Widget) refreshDefinitionFlag() {
	has := w.services.Providers != nil && w.services.Providers.HasDefinitionProvider(w.ref.TargetURI())
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return
	}
	w.hasDef = has
	w.scope.Set(KeyHasDefinition, has)
}

func (w *Widget) refreshReferenceFlag() {
	has := w.services.Providers != nil && w.services.Providers.HasReferenceProvider(w.ref.TargetURI())
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return
	}
	w.hasRef = has
	w.scope.Set(KeyHasReference, has)
}

// startStatRefinement issues the best-effort async stat that refines the
// is-folder flag used for menu filtering. Failure is swallowed; a completion
// racing with disposal is suppressed by the disposed flag.
func (w *Widget) startStatRefinement() {
	if w.services.Metadata == nil {
		return
	}
	statCtx, cancel := context.WithCancel(context.Background())
	w.statCancel = cancel

	go func() {
		stat, err := w.services.Metadata.Stat(statCtx, w.ref.URI)
		if err != nil {
			return
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.disposed {
			return
		}
		w.isFolder = stat.IsDirectory
		w.scope.Set(KeyIsFolder, stat.IsDirectory)
	}()
}

func (w *Widget) bindInteractions() {
	if w.element == nil {
		return
	}
	w.disposables = append(w.disposables,
		w.element.OnClick(w.handleClick),
		w.element.OnContextMenu(w.handleContextMenu),
		w.element.OnDragStart(w.handleDragStart),
	)
	if w.services.Hover != nil && w.services.Labels != nil {
		w.disposables = append(w.disposables,
			w.services.Hover.AttachHover(w.element, w.services.Labels.RelativePath(w.ref.TargetURI())))
	}
}

// handleClick records focus and fires the click telemetry event. Navigation
// is driven by the element's own hyperlink semantics, not by the widget.
func (w *Widget) handleClick() {
	w.focus.Set(w)
	if w.services.Telemetry == nil {
		return
	}
	variant := "openResource"
	if w.ref.Variant == VariantSymbol {
		variant = "openSymbol"
	}
	w.services.Telemetry.Publish(EventAnchorClick, map[string]string{
		"anchorId": w.Identity(),
		"variant":  variant,
	})
}

// handleContextMenu presents the filtered action set for this variant's menu
func (w *Widget) handleContextMenu(x, y int) {
	w.focus.Set(w)
	if w.registry == nil || w.services.Menus == nil {
		return
	}
	menuID := MenuResourceAnchor
	if w.ref.Variant == VariantSymbol {
		menuID = MenuSymbolAnchor
	}
	items := w.registry.MenuItemsFor(menuID, w.scope, w)
	w.services.Menus.ShowMenu(w.element, x, y, items)
}

// handleDragStart populates the external drag transfer with the reference
// URI and pins the dragged visual to the element itself.
func (w *Widget) handleDragStart(transfer types.DragDataTransfer) {
	w.focus.Set(w)
	transfer.SetResources([]string{w.ref.TargetURI()})
	transfer.SetDragImage(w.element, 0, 0)
}

// Identity returns the widget's opaque anchor token, generating it lazily on
// the first interaction that needs it. The token is stable for the widget's
// lifetime and used only for telemetry correlation.
func (w *Widget) Identity() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.anchorID == "" {
		w.anchorID = uuid.NewString()
	}
	return w.anchorID
}

// Variant returns the classified variant
func (w *Widget) Variant() Variant {
	return w.ref.Variant
}

// Display returns the derived display data
func (w *Widget) Display() DisplayData {
	return w.display
}

// Data exposes the resolved reference for read-only host inspection
func (w *Widget) Data() types.AnchorData {
	return w.ref.Data()
}

// Scope returns the widget's context scope
func (w *Widget) Scope() *ContextScope {
	return w.scope
}

// IsFolder reports the current folder classification of a resource anchor
func (w *Widget) IsFolder() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isFolder
}

// HasDefinitionProvider reports the definition capability flag
func (w *Widget) HasDefinitionProvider() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hasDef
}

// HasReferenceProvider reports the reference capability flag
func (w *Widget) HasReferenceProvider() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hasRef
}

// Disposed reports whether Dispose has run
func (w *Widget) Disposed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}

// Dispose synchronously detaches all listeners, cancels the pending stat, and
// releases the focus slot if it still points here. Safe to call repeatedly.
func (w *Widget) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	cancel := w.statCancel
	disposables := w.disposables
	w.disposables = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, d := range disposables {
		d.Dispose()
	}
	if w.focus != nil {
		w.focus.Clear(w)
	}
}
