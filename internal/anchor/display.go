package anchor

import (
	"fmt"

	"chatanchor/pkg/types"
)

// DisplayData is the render-ready projection of a classified reference. It is
// derived once at bind time and never kept in sync with live providers; the
// two capability flags live on the widget instead.
type DisplayData struct {
	Label       string
	IconClasses []string
	LinkTarget  string
}

// See: https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#symbolKind
var symbolKindIcons = map[int]string{
	1:  "symbol-file",
	2:  "symbol-module",
	3:  "symbol-namespace",
	4:  "symbol-package",
	5:  "symbol-class",
	6:  "symbol-method",
	7:  "symbol-property",
	8:  "symbol-field",
	9:  "symbol-constructor",
	10: "symbol-enum",
	11: "symbol-interface",
	12: "symbol-function",
	13: "symbol-variable",
	14: "symbol-constant",
	15: "symbol-string",
	16: "symbol-number",
	17: "symbol-boolean",
	18: "symbol-array",
	19: "symbol-object",
	20: "symbol-key",
	21: "symbol-null",
	22: "symbol-enum-member",
	23: "symbol-struct",
	24: "symbol-event",
	25: "symbol-operator",
	26: "symbol-type-parameter",
}

const symbolIconFallback = "symbol-misc"

// SymbolKindIcon returns the codicon name for an LSP symbol kind
func SymbolKindIcon(kind int) string {
	icon, ok := symbolKindIcons[kind]
	if !ok {
		return symbolIconFallback
	}
	return icon
}

// DeriveDisplay computes the label, icon classes, and hyperlink target for a
// classified reference. The derivation is deterministic: two identical inputs
// always produce identical display data.
func DeriveDisplay(c Classified, icons types.IconResolver, labels types.LabelService) DisplayData {
	switch c.Variant {
	case VariantSymbol:
		return DisplayData{
			Label:       c.Symbol.Name,
			IconClasses: []string{"codicon", "codicon-" + SymbolKindIcon(c.Symbol.Kind)},
			LinkTarget:  c.Symbol.Location.URI,
		}
	default:
		label := labels.BaseName(c.URI)
		target := c.URI
		if c.Range != nil {
			fragment := fmt.Sprintf("%d-%d", c.Range.StartLine, c.Range.EndLine)
			label = label + "#" + fragment
			target = target + "#" + fragment
		}
		return DisplayData{
			Label:       label,
			IconClasses: icons.ResourceIcons(c.URI),
			LinkTarget:  target,
		}
	}
}
