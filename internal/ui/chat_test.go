package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatanchor/internal/config"
	"chatanchor/internal/icons"
	"chatanchor/internal/labels"
	"chatanchor/pkg/types"
)

type captureClipboard struct {
	written [][]string
}

func (c *captureClipboard) WriteResources(uris []string) error {
	c.written = append(c.written, uris)
	return nil
}

type captureTelemetry struct {
	events []string
}

func (t *captureTelemetry) Publish(event string, props map[string]string) {
	t.events = append(t.events, event)
}

func testModel(t *testing.T) (*Model, *captureClipboard, *captureTelemetry) {
	t.Helper()
	clip := &captureClipboard{}
	tel := &captureTelemetry{}
	m := NewModel(config.Default(), Deps{
		Icons:     icons.NewThemeResolver(),
		Labels:    labels.NewService("/ws"),
		Clipboard: clip,
		Telemetry: tel,
	})
	return m, clip, tel
}

func fileRef() types.InlineReference {
	return types.InlineReference{URI: "file:///ws/docs/b.txt"}
}

func pressAt(m *Model, x, y int, button tea.MouseButton) {
	m.handleMouse(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
}

func TestAddMessageBuildsAnchorSpan(t *testing.T) {
	m, _, _ := testModel(t)

	require.NoError(t, m.AddMessage("user", Text("see "), Anchor(fileRef())))

	require.Len(t, m.spans, 1)
	span := m.spans[0]
	assert.Equal(t, 0, span.line)
	assert.Equal(t, len("user: see "), span.start)
	assert.Equal(t, "b.txt", span.widget.Display().Label)
}

func TestAddMessageMalformedReference(t *testing.T) {
	m, _, _ := testModel(t)

	err := m.AddMessage("user", Anchor(types.InlineReference{}))
	assert.Error(t, err)
	assert.Empty(t, m.spans)
}

func TestLeftClickFocusesAnchorAndReportsTelemetry(t *testing.T) {
	m, _, tel := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	pressAt(m, span.start, headerHeight+span.line, tea.MouseButtonLeft)

	assert.Same(t, span.widget, m.focus.Current())
	assert.Equal(t, []string{"chat.inlineAnchor.click"}, tel.events)
}

func TestClickOutsideSpansIsIgnored(t *testing.T) {
	m, _, tel := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	pressAt(m, 0, headerHeight, tea.MouseButtonLeft)

	assert.Nil(t, m.focus.Current())
	assert.Empty(t, tel.events)
}

func TestRightClickOpensResourceMenuAndConfirmAttaches(t *testing.T) {
	m, _, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	pressAt(m, span.start, headerHeight+span.line, tea.MouseButtonRight)

	require.NotNil(t, m.menu)
	require.Len(t, m.menu.items, 1)
	assert.Equal(t, "Add File to Chat", m.menu.items[0].Title)

	m.updateMenu(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))

	assert.Nil(t, m.menu)
	assert.Equal(t, []string{"file:///ws/docs/b.txt"}, m.attachments)
}

func TestCopyKeybindingUsesFocusedAnchor(t *testing.T) {
	m, clip, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	pressAt(m, span.start, headerHeight+span.line, tea.MouseButtonLeft)
	m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}}))

	require.Len(t, clip.written, 1)
	assert.Equal(t, []string{"file:///ws/docs/b.txt"}, clip.written[0])
}

func TestCopyKeybindingWithoutFocusIsNoOp(t *testing.T) {
	m, clip, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}}))

	assert.Empty(t, clip.written)
}

func TestOpenToSideKeybinding(t *testing.T) {
	m, _, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	pressAt(m, span.start, headerHeight+span.line, tea.MouseButtonLeft)
	m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))

	assert.Contains(t, m.status, "opened to side: file:///ws/docs/b.txt")
}

func TestHoverShowsRelativePath(t *testing.T) {
	m, _, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	m.handleMouse(tea.MouseMsg{X: span.start, Y: headerHeight + span.line, Action: tea.MouseActionMotion})
	assert.Equal(t, "docs/b.txt", m.hoverText)

	m.handleMouse(tea.MouseMsg{X: 0, Y: headerHeight, Action: tea.MouseActionMotion})
	assert.Empty(t, m.hoverText)
}

func TestDragKeyPopulatesTransferFromFocusedAnchor(t *testing.T) {
	m, _, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))

	span := m.spans[0]
	pressAt(m, span.start, headerHeight+span.line, tea.MouseButtonLeft)
	m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{'d'}}))

	assert.Equal(t, []string{"file:///ws/docs/b.txt"}, m.dragging)
}

func TestDisposeDetachesHover(t *testing.T) {
	m, _, _ := testModel(t)
	require.NoError(t, m.AddMessage("user", Anchor(fileRef())))
	require.Len(t, m.hovers, 1)

	m.Dispose()
	assert.Empty(t, m.hovers)

	span := m.spans[0]
	m.handleMouse(tea.MouseMsg{X: span.start, Y: headerHeight + span.line, Action: tea.MouseActionMotion})
	assert.Empty(t, m.hoverText)
}
