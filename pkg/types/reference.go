package types

// Position represents a position in a text document
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a text document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location represents a location in a text document
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// LineRange represents an inclusive range of display lines within a resource
type LineRange struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// SymbolDescriptor describes a named source symbol with a definition location
type SymbolDescriptor struct {
	Name     string   `json:"name"`
	Kind     int      `json:"kind"`
	Location Location `json:"location"`
}

// InlineReference is the opaque payload carried by an inline anchor in a chat
// transcript. It is owned by the caller and takes one of three shapes:
//
//   - a symbol descriptor: Name is non-empty and Location is set
//   - a resource with a sub-range: URI is non-empty and Range is set
//   - a bare resource: URI is non-empty and Range is nil
//
// Any other shape is a malformed reference.
type InlineReference struct {
	Name     string     `json:"name,omitempty"`
	Kind     int        `json:"kind,omitempty"`
	Location *Location  `json:"location,omitempty"`
	URI      string     `json:"uri,omitempty"`
	Range    *LineRange `json:"range,omitempty"`
}

// AnchorData is the resolved reference data an anchor exposes for read-only
// inspection by keybinding-triggered actions.
type AnchorData struct {
	Kind   string            `json:"kind"`
	URI    string            `json:"uri"`
	Range  *LineRange        `json:"range,omitempty"`
	Symbol *SymbolDescriptor `json:"symbol,omitempty"`
}
