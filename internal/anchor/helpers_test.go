package anchor

import (
	"context"
	"path"
	"strings"
	"sync"

	"chatanchor/pkg/types"
)

// fakeElement records bound handlers and lets tests fire interactions
type fakeElement struct {
	clicks   []func()
	menus    []func(x, y int)
	drags    []func(types.DragDataTransfer)
	detached int
}

func (e *fakeElement) OnClick(fn func()) types.Disposable {
	e.clicks = append(e.clicks, fn)
	return types.DisposableFunc(func() { e.detached++ })
}

func (e *fakeElement) OnContextMenu(fn func(x, y int)) types.Disposable {
	e.menus = append(e.menus, fn)
	return types.DisposableFunc(func() { e.detached++ })
}

func (e *fakeElement) OnDragStart(fn func(types.DragDataTransfer)) types.Disposable {
	e.drags = append(e.drags, fn)
	return types.DisposableFunc(func() { e.detached++ })
}

func (e *fakeElement) Click() {
	for _, fn := range e.clicks {
		fn()
	}
}

func (e *fakeElement) ContextMenu(x, y int) {
	for _, fn := range e.menus {
		fn(x, y)
	}
}

func (e *fakeElement) DragStart(t types.DragDataTransfer) {
	for _, fn := range e.drags {
		fn(t)
	}
}

type fakeTransfer struct {
	resources []string
	imageEl   types.Element
	imageX    int
	imageY    int
}

func (t *fakeTransfer) SetResources(uris []string) { t.resources = uris }

func (t *fakeTransfer) SetDragImage(el types.Element, x, y int) {
	t.imageEl, t.imageX, t.imageY = el, x, y
}

type fakeIcons struct{}

func (fakeIcons) ResourceIcons(uri string) []string {
	if strings.HasSuffix(uri, "/") {
		return []string{"codicon", "codicon-folder"}
	}
	return []string{"codicon", "codicon-file"}
}

type fakeLabels struct{}

func (fakeLabels) BaseName(uri string) string {
	return path.Base(strings.TrimSuffix(strings.TrimPrefix(uri, "file://"), "/"))
}

func (fakeLabels) RelativePath(uri string) string {
	return strings.TrimPrefix(strings.TrimPrefix(uri, "file://"), "/")
}

type telemetryEvent struct {
	name  string
	props map[string]string
}

type fakeTelemetry struct {
	mu     sync.Mutex
	events []telemetryEvent
}

func (t *fakeTelemetry) Publish(event string, props map[string]string) {
	t.mu.Lock()
	t.events = append(t.events, telemetryEvent{name: event, props: props})
	t.mu.Unlock()
}

func (t *fakeTelemetry) Events() []telemetryEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]telemetryEvent(nil), t.events...)
}

// fakeProviders is a controllable provider registry with independent change
// events for each provider family.
type fakeProviders struct {
	mu      sync.Mutex
	hasDef  bool
	hasRef  bool
	defSubs []func()
	refSubs []func()
}

func (p *fakeProviders) HasDefinitionProvider(uri string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasDef
}

func (p *fakeProviders) HasReferenceProvider(uri string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasRef
}

func (p *fakeProviders) OnDidChangeDefinitionProviders(fn func()) types.Disposable {
	p.mu.Lock()
	p.defSubs = append(p.defSubs, fn)
	p.mu.Unlock()
	return types.DisposableFunc(func() {})
}

func (p *fakeProviders) OnDidChangeReferenceProviders(fn func()) types.Disposable {
	p.mu.Lock()
	p.refSubs = append(p.refSubs, fn)
	p.mu.Unlock()
	return types.DisposableFunc(func() {})
}

func (p *fakeProviders) setDefinition(has bool) {
	p.mu.Lock()
	p.hasDef = has
	subs := append([]func(){}, p.defSubs...)
	p.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (p *fakeProviders) setReference(has bool) {
	p.mu.Lock()
	p.hasRef = has
	subs := append([]func(){}, p.refSubs...)
	p.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// fakeMetadata delegates to StatFunc so tests can block or fail the stat
type fakeMetadata struct {
	StatFunc func(ctx context.Context, uri string) (types.FileStat, error)
}

func (m *fakeMetadata) Stat(ctx context.Context, uri string) (types.FileStat, error) {
	return m.StatFunc(ctx, uri)
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes [][]string
}

func (c *fakeClipboard) WriteResources(uris []string) error {
	c.mu.Lock()
	c.writes = append(c.writes, uris)
	c.mu.Unlock()
	return nil
}

type navCall struct {
	op  string
	uri string
}

type fakeNav struct {
	mu    sync.Mutex
	calls []navCall
}

func (n *fakeNav) record(op, uri string) {
	n.mu.Lock()
	n.calls = append(n.calls, navCall{op: op, uri: uri})
	n.mu.Unlock()
}

func (n *fakeNav) Open(ctx context.Context, loc types.Location) error {
	n.record("open", loc.URI)
	return nil
}

func (n *fakeNav) OpenToSide(ctx context.Context, uri string, sel *types.LineRange) error {
	n.record("openToSide", uri)
	return nil
}

func (n *fakeNav) PeekDefinition(ctx context.Context, loc types.Location) error {
	n.record("peekDefinition", loc.URI)
	return nil
}

func (n *fakeNav) FindReferences(ctx context.Context, loc types.Location) error {
	n.record("findReferences", loc.URI)
	return nil
}

type fakeChat struct {
	focused  bool
	attached []string
}

func (c *fakeChat) AttachResource(uri string, rng *types.LineRange) bool {
	if !c.focused {
		return false
	}
	c.attached = append(c.attached, uri)
	return true
}

type fakeMenus struct {
	shown [][]types.MenuItem
}

func (m *fakeMenus) ShowMenu(el types.Element, x, y int, items []types.MenuItem) {
	m.shown = append(m.shown, items)
}

type fakeHover struct {
	texts    []string
	detached int
}

func (h *fakeHover) AttachHover(el types.Element, text string) types.Disposable {
	h.texts = append(h.texts, text)
	return types.DisposableFunc(func() { h.detached++ })
}

func testServices() (Services, *fakeTelemetry, *fakeProviders, *fakeNav, *fakeClipboard, *fakeChat, *fakeMenus, *fakeHover) {
	telemetry := &fakeTelemetry{}
	providers := &fakeProviders{}
	nav := &fakeNav{}
	clip := &fakeClipboard{}
	chat := &fakeChat{focused: true}
	menus := &fakeMenus{}
	hover := &fakeHover{}
	services := Services{
		Providers: providers,
		Metadata:  &fakeMetadata{StatFunc: func(ctx context.Context, uri string) (types.FileStat, error) { return types.FileStat{}, nil }},
		Icons:     fakeIcons{},
		Labels:    fakeLabels{},
		Clipboard: clip,
		Menus:     menus,
		Hover:     hover,
		Nav:       nav,
		Chat:      chat,
		Telemetry: telemetry,
	}
	return services, telemetry, providers, nav, clip, chat, menus, hover
}

func symbolRef(name string, kind int, uri string) types.InlineReference {
	return types.InlineReference{
		Name: name,
		Kind: kind,
		Location: &types.Location{
			URI: uri,
			Range: types.Range{
				Start: types.Position{Line: 10, Character: 2},
				End:   types.Position{Line: 10, Character: 8},
			},
		},
	}
}

func resourceRef(uri string, rng *types.LineRange) types.InlineReference {
	return types.InlineReference{URI: uri, Range: rng}
}
