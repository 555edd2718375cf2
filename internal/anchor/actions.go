package anchor

import (
	"context"

	"chatanchor/pkg/types"
)

// Context menu identifiers, selected by the resolved variant at bind time
const (
	MenuSymbolAnchor   = "menu.anchor.symbol"
	MenuResourceAnchor = "menu.anchor.resource"
)

// Keybinding trigger identifiers for argument-less actions
const (
	KeyTriggerCopy    = "copy"
	KeyTriggerConfirm = "confirm"
)

// Action identifiers
const (
	ActionAddFileToChat  = "anchor.addFileToChat"
	ActionCopy           = "anchor.copy"
	ActionOpenToSide     = "anchor.openToSide"
	ActionGoToDefinition = "anchor.goToDefinition"
	ActionGoToReferences = "anchor.goToReferences"
)

// Action is one named command in the fixed set. Menu actions declare the menu
// they appear in and an applicability predicate over the anchor's scope;
// keybinding actions declare their trigger and resolve their target through
// the focus tracker at invocation time.
type Action struct {
	ID    string
	Title string
	Menu  string
	Key   string

	// AppliesTo gates menu presentation against the scoped context
	AppliesTo func(scope *ContextScope) bool

	// Run executes the effect against a resolved target widget
	Run func(ctx context.Context, w *Widget, services Services) error
}

// Registry holds the fixed, ordered action set
type Registry struct {
	actions []Action
}

// NewRegistry builds the fixed command set
func NewRegistry() *Registry {
	return &Registry{actions: []Action{
		{
			ID:    ActionAddFileToChat,
			Title: "Add File to Chat",
			Menu:  MenuResourceAnchor,
			AppliesTo: func(scope *ContextScope) bool {
				return !scope.GetBool(KeyIsFolder)
			},
			Run: func(ctx context.Context, w *Widget, services Services) error {
				if services.Chat == nil {
					return nil
				}
				data := w.Data()
				// Attach reports false when no chat surface holds focus;
				// that is a silent no-op, not an error.
				services.Chat.AttachResource(data.URI, data.Range)
				return nil
			},
		},
		{
			ID:    ActionCopy,
			Title: "Copy",
			Key:   KeyTriggerCopy,
			AppliesTo: func(scope *ContextScope) bool {
				return scope.GetString(KeyVariant) == string(VariantResource)
			},
			Run: func(ctx context.Context, w *Widget, services Services) error {
				if services.Clipboard == nil {
					return nil
				}
				return services.Clipboard.WriteResources([]string{w.Data().URI})
			},
		},
		{
			ID:    ActionOpenToSide,
			Title: "Open to Side",
			Key:   KeyTriggerConfirm,
			AppliesTo: func(scope *ContextScope) bool {
				return scope.GetString(KeyVariant) == string(VariantResource)
			},
			Run: func(ctx context.Context, w *Widget, services Services) error {
				if services.Nav == nil {
					return nil
				}
				data := w.Data()
				return services.Nav.OpenToSide(ctx, data.URI, data.Range)
			},
		},
		{
			ID:    ActionGoToDefinition,
			Title: "Go to Definition",
			Menu:  MenuSymbolAnchor,
			AppliesTo: func(scope *ContextScope) bool {
				return scope.GetBool(KeyHasDefinition)
			},
			Run: func(ctx context.Context, w *Widget, services Services) error {
				if services.Nav == nil {
					return nil
				}
				loc := w.Data().Symbol.Location
				if err := services.Nav.Open(ctx, loc); err != nil {
					return err
				}
				return services.Nav.PeekDefinition(ctx, loc)
			},
		},
		{
			ID:    ActionGoToReferences,
			Title: "Go to References",
			Menu:  MenuSymbolAnchor,
			AppliesTo: func(scope *ContextScope) bool {
				return scope.GetBool(KeyHasReference)
			},
			Run: func(ctx context.Context, w *Widget, services Services) error {
				if services.Nav == nil {
					return nil
				}
				loc := w.Data().Symbol.Location
				if err := services.Nav.Open(ctx, loc); err != nil {
					return err
				}
				return services.Nav.FindReferences(ctx, loc)
			},
		},
	}}
}

// ActionsFor returns the applicable actions for a menu, evaluated against
// the given scope, in declaration order.
func (r *Registry) ActionsFor(menuID string, scope *ContextScope) []Action {
	var out []Action
	for _, a := range r.actions {
		if a.Menu != menuID {
			continue
		}
		if a.AppliesTo != nil && !a.AppliesTo(scope) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MenuItemsFor materializes the applicable actions as menu items with their
// effects bound to the given widget.
func (r *Registry) MenuItemsFor(menuID string, scope *ContextScope, w *Widget) []types.MenuItem {
	actions := r.ActionsFor(menuID, scope)
	items := make([]types.MenuItem, 0, len(actions))
	for _, a := range actions {
		run := a.Run
		items = append(items, types.MenuItem{
			ID:    a.ID,
			Title: a.Title,
			Run: func(ctx context.Context) error {
				return run(ctx, w, w.services)
			},
		})
	}
	return items
}

// RunKeybinding fires the action bound to the given trigger against the
// last-focused anchor. It is a silent no-op when nothing is tracked, when the
// tracked anchor is a symbol (both keybinding actions are resource-only), or
// when the trigger is unknown.
func (r *Registry) RunKeybinding(ctx context.Context, trigger string, focus *FocusTracker, services Services) error {
	w := focus.Current()
	if w == nil || w.Disposed() {
		return nil
	}
	for _, a := range r.actions {
		if a.Key != trigger {
			continue
		}
		if a.AppliesTo != nil && !a.AppliesTo(w.Scope()) {
			return nil
		}
		return a.Run(ctx, w, services)
	}
	return nil
}
