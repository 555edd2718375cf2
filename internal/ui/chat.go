package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chatanchor/internal/anchor"
	"chatanchor/internal/config"
	"chatanchor/internal/navigation"
	"chatanchor/pkg/types"
)

const (
	headerHeight = 1
	footerHeight = 3
)

var (
	_ types.MenuHost    = (*Model)(nil)
	_ types.HoverHost   = (*Model)(nil)
	_ types.ChatSurface = (*Model)(nil)
	_ navigation.Opener = (*Model)(nil)
)

// Segment is one run of a chat message: plain text, or an inline anchor
// resolved from a reference.
type Segment struct {
	Text string
	Ref  *types.InlineReference
}

// Text creates a plain text segment
func Text(s string) Segment { return Segment{Text: s} }

// Anchor creates an inline anchor segment
func Anchor(ref types.InlineReference) Segment { return Segment{Ref: &ref} }

// Deps are the collaborators the chat model does not provide itself. The
// model supplies the menu, hover, chat and navigation surfaces on its own.
type Deps struct {
	Providers types.ProviderRegistry
	Metadata  types.ResourceMetadata
	Icons     types.IconResolver
	Labels    types.LabelService
	Clipboard types.ClipboardSink
	Telemetry types.TelemetrySink
	Navigator navigation.LanguageNavigator
}

type renderedSeg struct {
	text    string
	widget  *anchor.Widget
	element *AnchorElement
	display anchor.DisplayData
}

type chatMessage struct {
	speaker string
	segs    []renderedSeg
}

// anchorSpan is the hit box of one rendered anchor, in content coordinates
type anchorSpan struct {
	line    int
	start   int
	width   int
	element *AnchorElement
	widget  *anchor.Widget
}

type menuState struct {
	items  []types.MenuItem
	cursor int
}

type keyMap struct {
	Copy       key.Binding
	OpenToSide key.Binding
	Drag       key.Binding
	Quit       key.Binding
	MenuUp     key.Binding
	MenuDown   key.Binding
	Confirm    key.Binding
	Dismiss    key.Binding
}

func newKeyMap(k config.Keys) keyMap {
	return keyMap{
		Copy:       key.NewBinding(key.WithKeys(k.Copy...), key.WithHelp(strings.Join(k.Copy, "/"), "copy")),
		OpenToSide: key.NewBinding(key.WithKeys(k.OpenToSide...), key.WithHelp(strings.Join(k.OpenToSide, "/"), "open to side")),
		Drag:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag focused anchor")),
		Quit:       key.NewBinding(key.WithKeys(k.Quit...), key.WithHelp(strings.Join(k.Quit, "/"), "quit")),
		MenuUp:     key.NewBinding(key.WithKeys("up", "k")),
		MenuDown:   key.NewBinding(key.WithKeys("down", "j")),
		Confirm:    key.NewBinding(key.WithKeys("enter")),
		Dismiss:    key.NewBinding(key.WithKeys("esc")),
	}
}

type styles struct {
	header  lipgloss.Style
	speaker lipgloss.Style
	body    lipgloss.Style
	anchor  lipgloss.Style
	menu    lipgloss.Style
	cursor  lipgloss.Style
	hover   lipgloss.Style
	status  lipgloss.Style
}

func newStyles(t config.Theme) styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.BotLine)),
		speaker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.UserLine)),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.BotLine)),
		anchor:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(t.Anchor)),
		menu:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color(t.Menu)),
		cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.AnchorIcon)),
		hover:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Hover)),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.AnchorIcon)),
	}
}

// Model is a chat transcript whose messages may carry inline anchors. It
// renders the transcript in a scrollable viewport, routes mouse events to
// anchor elements, presents context menus, and dispatches the configured
// keybindings against the last-focused anchor.
type Model struct {
	cfg    config.File
	styles styles
	keys   keyMap

	viewport viewport.Model
	ready    bool
	width    int

	focus     *anchor.FocusTracker
	registry  *anchor.Registry
	rootScope *anchor.ContextScope
	services  anchor.Services

	messages []chatMessage
	spans    []anchorSpan

	hovers    map[*AnchorElement]string
	hoverText string

	menu *menuState

	attachments []string
	dragging    []string
	status      string
}

// NewModel creates a chat model wired to the given collaborators
func NewModel(cfg config.File, deps Deps) *Model {
	m := &Model{
		cfg:       cfg,
		styles:    newStyles(cfg.Theme),
		keys:      newKeyMap(cfg.Keys),
		width:     80,
		focus:     anchor.NewFocusTracker(),
		registry:  anchor.NewRegistry(),
		rootScope: anchor.NewContextScope(),
		hovers:    make(map[*AnchorElement]string),
	}
	m.services = anchor.Services{
		Providers: deps.Providers,
		Metadata:  deps.Metadata,
		Icons:     deps.Icons,
		Labels:    deps.Labels,
		Clipboard: deps.Clipboard,
		Menus:     m,
		Hover:     m,
		Nav:       navigation.NewHost(deps.Navigator, m),
		Chat:      m,
		Telemetry: deps.Telemetry,
	}
	return m
}

// AddMessage appends a transcript message, constructing an anchor widget for
// every anchor segment. A malformed reference fails the whole message.
func (m *Model) AddMessage(speaker string, segments ...Segment) error {
	msg := chatMessage{speaker: speaker}
	for _, seg := range segments {
		if seg.Ref == nil {
			msg.segs = append(msg.segs, renderedSeg{text: seg.Text})
			continue
		}
		el := NewAnchorElement()
		w, err := anchor.NewWidget(*seg.Ref, el, m.rootScope, m.focus, m.registry, m.services)
		if err != nil {
			return fmt.Errorf("failed to add chat message: %w", err)
		}
		msg.segs = append(msg.segs, renderedSeg{widget: w, element: el, display: w.Display()})
	}
	m.messages = append(m.messages, msg)
	m.rebuild()
	return nil
}

// Dispose releases every anchor widget in the transcript
func (m *Model) Dispose() {
	for _, msg := range m.messages {
		for _, seg := range msg.segs {
			if seg.widget != nil {
				seg.widget.Dispose()
			}
		}
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.menu != nil {
			m.updateMenu(msg)
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Dispose()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			m.runTrigger(anchor.KeyTriggerCopy)
			return m, nil
		case key.Matches(msg, m.keys.OpenToSide):
			m.runTrigger(anchor.KeyTriggerConfirm)
			return m, nil
		case key.Matches(msg, m.keys.Drag):
			m.startDrag()
			return m, nil
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("chatanchor"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.menu != nil {
		b.WriteString(m.menuView())
	} else {
		b.WriteString(m.footerView())
	}
	return b.String()
}

func (m *Model) footerView() string {
	hover := " "
	if m.hoverText != "" {
		hover = m.styles.hover.Render(m.hoverText)
	}
	status := " "
	switch {
	case m.status != "":
		status = m.styles.status.Render(m.status)
	case len(m.dragging) > 0:
		status = m.styles.status.Render("dragging " + strings.Join(m.dragging, ", "))
	}
	context := " "
	if len(m.attachments) > 0 {
		context = m.styles.status.Render("chat context: " + strings.Join(m.attachments, ", "))
	}
	return hover + "\n" + status + "\n" + context
}

func (m *Model) menuView() string {
	var lines []string
	for i, item := range m.menu.items {
		prefix := "  "
		line := item.Title
		if i == m.menu.cursor {
			prefix = "> "
			line = m.styles.cursor.Render(line)
		}
		lines = append(lines, prefix+line)
	}
	return m.styles.menu.Render(strings.Join(lines, "\n"))
}

// ShowMenu implements types.MenuHost. An empty item list presents nothing.
func (m *Model) ShowMenu(el types.Element, x, y int, items []types.MenuItem) {
	if len(items) == 0 {
		return
	}
	m.menu = &menuState{items: items}
}

// AttachHover implements types.HoverHost
func (m *Model) AttachHover(el types.Element, text string) types.Disposable {
	ae, ok := el.(*AnchorElement)
	if !ok {
		return types.DisposableFunc(func() {})
	}
	m.hovers[ae] = text
	return types.DisposableFunc(func() {
		delete(m.hovers, ae)
	})
}

// AttachResource implements types.ChatSurface. The demo's chat input always
// holds focus, so attachment always succeeds.
func (m *Model) AttachResource(uri string, rng *types.LineRange) bool {
	label := uri
	if rng != nil {
		label = fmt.Sprintf("%s#%d-%d", uri, rng.StartLine, rng.EndLine)
	}
	m.attachments = append(m.attachments, label)
	return true
}

// OpenFile implements navigation.Opener by reporting the open in the status
// line; the demo has no editor pane to land in.
func (m *Model) OpenFile(uri string, selection *types.LineRange, side bool) error {
	target := uri
	if selection != nil {
		target = fmt.Sprintf("%s#%d-%d", uri, selection.StartLine, selection.EndLine)
	}
	if side {
		m.status = "opened to side: " + target
	} else {
		m.status = "opened: " + target
	}
	return nil
}

// ShowLocations implements navigation.Opener
func (m *Model) ShowLocations(title string, locations []types.Location) error {
	m.status = fmt.Sprintf("%s: %d location(s)", title, len(locations))
	return nil
}

func (m *Model) runTrigger(trigger string) {
	if err := m.registry.RunKeybinding(context.Background(), trigger, m.focus, m.services); err != nil {
		m.status = err.Error()
	}
}

// startDrag fires the drag handlers of the last-focused anchor's element
func (m *Model) startDrag() {
	w := m.focus.Current()
	if w == nil {
		return
	}
	for _, span := range m.spans {
		if span.widget == w {
			span.element.DragStart(&dragTransfer{model: m})
			return
		}
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) {
	menu := m.menu
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.menu = nil
	case key.Matches(msg, m.keys.MenuUp):
		if menu.cursor > 0 {
			menu.cursor--
		}
	case key.Matches(msg, m.keys.MenuDown):
		if menu.cursor < len(menu.items)-1 {
			menu.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		item := menu.items[menu.cursor]
		m.menu = nil
		if err := item.Run(context.Background()); err != nil {
			m.status = err.Error()
		}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if span := m.spanAt(msg.X, msg.Y); span != nil {
			m.hoverText = m.hovers[span.element]
		} else {
			m.hoverText = ""
		}
	case tea.MouseActionPress:
		if m.menu != nil {
			m.menu = nil
			return
		}
		span := m.spanAt(msg.X, msg.Y)
		if span == nil {
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.status = ""
			span.element.Click()
		case tea.MouseButtonRight:
			span.element.ContextMenu(msg.X, msg.Y)
		}
	}
}

// spanAt maps a screen cell to the anchor span under it, accounting for the
// header row and the viewport scroll offset.
func (m *Model) spanAt(x, y int) *anchorSpan {
	line := y - headerHeight + m.viewport.YOffset
	for i := range m.spans {
		span := &m.spans[i]
		if span.line == line && x >= span.start && x < span.start+span.width {
			return span
		}
	}
	return nil
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	vpHeight := msg.Height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.rebuild()
}

// rebuild renders the transcript and recomputes every anchor hit box. Hit
// boxes track visible columns, so widths come from the plain text, never from
// the styled output.
func (m *Model) rebuild() {
	m.spans = m.spans[:0]
	var content strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}
		prefix := msg.speaker + ": "
		content.WriteString(m.styles.speaker.Render(prefix))
		col := runewidth.StringWidth(prefix)
		for _, seg := range msg.segs {
			if seg.widget == nil {
				text := truncate(seg.text, m.width-col)
				content.WriteString(m.styles.body.Render(text))
				col += runewidth.StringWidth(text)
				continue
			}
			text := glyphFor(seg.display.IconClasses) + " " + seg.display.Label
			width := runewidth.StringWidth(text)
			m.spans = append(m.spans, anchorSpan{
				line:    i,
				start:   col,
				width:   width,
				element: seg.element,
				widget:  seg.widget,
			})
			content.WriteString(m.styles.anchor.Render(text))
			col += width
		}
	}
	m.viewport.SetContent(content.String())
}

func glyphFor(classes []string) string {
	for _, class := range classes {
		switch {
		case strings.Contains(class, "folder"):
			return "▸"
		case strings.HasPrefix(class, "codicon-symbol-"):
			return "◆"
		}
	}
	return "•"
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// dragTransfer carries a drag's payload. In the terminal demo a drop lands in
// the chat context directly.
type dragTransfer struct {
	model *Model
}

var _ types.DragDataTransfer = (*dragTransfer)(nil)

// SetResources records the dragged URIs
func (t *dragTransfer) SetResources(uris []string) {
	t.model.dragging = uris
}

// SetDragImage is a no-op; the terminal has no drag visual
func (t *dragTransfer) SetDragImage(el types.Element, x, y int) {}
