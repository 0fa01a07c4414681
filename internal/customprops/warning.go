package customprops

import (
	"fmt"

	"bennypowers.dev/cpsort/internal/parser/css"
)

// WarningKind identifies the anomaly a Warning reports
type WarningKind int

const (
	// DuplicateProperty is reported when a rule declares the same custom property twice
	DuplicateProperty WarningKind = iota + 1
	// InvalidSortOrder is reported when the sortOrder option is not a comparator
	InvalidSortOrder
)

func (k WarningKind) String() string {
	switch k {
	case DuplicateProperty:
		return "duplicate-property"
	case InvalidSortOrder:
		return "invalid-sort-order"
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning is a non-blocking diagnostic produced while sorting
type Warning struct {
	Kind    WarningKind
	Message string
	// Word is the offending text, used by editors to narrow the highlighted range
	Word string
	// Position is only meaningful when HasPosition is true
	Position    css.Position
	HasPosition bool
}

func (w Warning) String() string {
	if w.HasPosition {
		return fmt.Sprintf("%d:%d: %s", w.Position.Line+1, w.Position.Character+1, w.Message)
	}
	return w.Message
}

func duplicatePropertyWarning(decl *css.Declaration) Warning {
	return Warning{
		Kind:        DuplicateProperty,
		Message:     fmt.Sprintf("Duplicate custom property found: %s. Only the last declaration will be kept.", decl.Prop),
		Word:        decl.Prop,
		Position:    decl.Position,
		HasPosition: true,
	}
}

func invalidSortOrderWarning() Warning {
	return Warning{
		Kind:    InvalidSortOrder,
		Message: "The sort order input must be provided as a function. The custom properties will be sorted alphanumerically by default.",
		Word:    "sortOrder",
	}
}
