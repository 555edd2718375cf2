package anchor

import (
	"errors"
	"fmt"

	"chatanchor/pkg/types"
)

// Variant identifies which shape an inline reference resolved to
type Variant string

const (
	VariantSymbol   Variant = "symbol"
	VariantResource Variant = "resource"
)

// ErrMalformedReference is returned when an inline reference matches neither
// known shape. This is a programming error on the caller's side, not a
// user-recoverable condition.
var ErrMalformedReference = errors.New("malformed inline reference")

// Classified is the tagged-variant form of an inline reference. Exactly one
// variant is active: Symbol carries the descriptor, Resource carries URI and
// an optional line range. A nil Range means a whole-file reference.
type Classified struct {
	Variant Variant
	Symbol  *types.SymbolDescriptor
	URI     string
	Range   *types.LineRange
}

// Classify normalizes an inline reference into its tagged variant. A payload
// with a name is a symbol descriptor (its location is required); a payload
// with a URI is a direct resource reference. Classification is pure.
func Classify(ref types.InlineReference) (Classified, error) {
	switch {
	case ref.Name != "":
		if ref.Location == nil {
			return Classified{}, fmt.Errorf("%w: symbol %q has no location", ErrMalformedReference, ref.Name)
		}
		return Classified{
			Variant: VariantSymbol,
			Symbol: &types.SymbolDescriptor{
				Name:     ref.Name,
				Kind:     ref.Kind,
				Location: *ref.Location,
			},
		}, nil
	case ref.URI != "":
		return Classified{
			Variant: VariantResource,
			URI:     ref.URI,
			Range:   ref.Range,
		}, nil
	default:
		return Classified{}, fmt.Errorf("%w: neither name nor uri present", ErrMalformedReference)
	}
}

// TargetURI returns the URI the variant ultimately points at: the symbol's
// location URI for symbols, the resource URI otherwise.
func (c Classified) TargetURI() string {
	if c.Variant == VariantSymbol {
		return c.Symbol.Location.URI
	}
	return c.URI
}

// Data exposes the classified reference for read-only host inspection
func (c Classified) Data() types.AnchorData {
	return types.AnchorData{
		Kind:   string(c.Variant),
		URI:    c.TargetURI(),
		Range:  c.Range,
		Symbol: c.Symbol,
	}
}
