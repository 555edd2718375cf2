package ui

import (
	"sync"

	"chatanchor/pkg/types"
)

var _ types.Element = (*AnchorElement)(nil)

// AnchorElement is the terminal stand-in for an anchor's host element. The
// chat model translates mouse and key events into calls on the fire methods;
// anchor widgets register handlers through the types.Element interface and
// detach them by disposing the returned handle.
type AnchorElement struct {
	mu     sync.Mutex
	nextID int
	clicks map[int]func()
	menus  map[int]func(x, y int)
	drags  map[int]func(types.DragDataTransfer)
}

// NewAnchorElement creates an element with no handlers attached
func NewAnchorElement() *AnchorElement {
	return &AnchorElement{
		clicks: make(map[int]func()),
		menus:  make(map[int]func(x, y int)),
		drags:  make(map[int]func(types.DragDataTransfer)),
	}
}

// OnClick registers a primary-click handler
func (e *AnchorElement) OnClick(fn func()) types.Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.clicks[id] = fn
	return types.DisposableFunc(func() {
		e.mu.Lock()
		delete(e.clicks, id)
		e.mu.Unlock()
	})
}

// OnContextMenu registers a secondary-click handler
func (e *AnchorElement) OnContextMenu(fn func(x, y int)) types.Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.menus[id] = fn
	return types.DisposableFunc(func() {
		e.mu.Lock()
		delete(e.menus, id)
		e.mu.Unlock()
	})
}

// OnDragStart registers a drag-start handler
func (e *AnchorElement) OnDragStart(fn func(transfer types.DragDataTransfer)) types.Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.drags[id] = fn
	return types.DisposableFunc(func() {
		e.mu.Lock()
		delete(e.drags, id)
		e.mu.Unlock()
	})
}

// Click fires all registered click handlers
func (e *AnchorElement) Click() {
	for _, fn := range e.clickHandlers() {
		fn()
	}
}

// ContextMenu fires all registered context-menu handlers at the given cell
func (e *AnchorElement) ContextMenu(x, y int) {
	e.mu.Lock()
	handlers := make([]func(x, y int), 0, len(e.menus))
	for _, fn := range e.menus {
		handlers = append(handlers, fn)
	}
	e.mu.Unlock()
	for _, fn := range handlers {
		fn(x, y)
	}
}

// DragStart fires all registered drag handlers with the given transfer
func (e *AnchorElement) DragStart(transfer types.DragDataTransfer) {
	e.mu.Lock()
	handlers := make([]func(types.DragDataTransfer), 0, len(e.drags))
	for _, fn := range e.drags {
		handlers = append(handlers, fn)
	}
	e.mu.Unlock()
	for _, fn := range handlers {
		fn(transfer)
	}
}

func (e *AnchorElement) clickHandlers() []func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	handlers := make([]func(), 0, len(e.clicks))
	for _, fn := range e.clicks {
		handlers = append(handlers, fn)
	}
	return handlers
}
