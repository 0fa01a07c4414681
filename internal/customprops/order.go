package customprops

import (
	"sort"
	"strings"

	"bennypowers.dev/cpsort/internal/parser/css"
	"github.com/maruel/natural"
)

// Property pairs a custom property name with its declaration
type Property struct {
	Name string
	Decl *css.Declaration
}

// Comparator orders two properties, returning a negative number when a sorts
// before b, zero when they are equivalent, and a positive number otherwise
type Comparator func(a, b Property) int

// SortOrder is either the default alphanumeric order or a custom comparator.
// The zero value is the default order.
type SortOrder struct {
	custom Comparator
}

// DefaultSortOrder returns the alphanumeric sort order
func DefaultSortOrder() SortOrder {
	return SortOrder{}
}

// CustomSortOrder returns a sort order backed by cmp. A nil cmp is the default order.
func CustomSortOrder(cmp Comparator) SortOrder {
	return SortOrder{custom: cmp}
}

// IsDefault reports whether the order is the built-in alphanumeric order
func (o SortOrder) IsDefault() bool {
	return o.custom == nil
}

// Compare applies the order to a and b
func (o SortOrder) Compare(a, b Property) int {
	if o.custom != nil {
		return o.custom(a, b)
	}
	return Alphanumeric(a, b)
}

// ParseSortOrder validates a sortOrder option value.
// nil selects the default order; a Comparator or a func(a, b Property) int
// selects a custom order; anything else yields a warning and the default.
func ParseSortOrder(v any) (SortOrder, *Warning) {
	switch cmp := v.(type) {
	case nil:
		return DefaultSortOrder(), nil
	case SortOrder:
		return cmp, nil
	case Comparator:
		if cmp == nil {
			return DefaultSortOrder(), nil
		}
		return CustomSortOrder(cmp), nil
	case func(a, b Property) int:
		if cmp == nil {
			return DefaultSortOrder(), nil
		}
		return CustomSortOrder(cmp), nil
	}
	w := invalidSortOrderWarning()
	return DefaultSortOrder(), &w
}

// Alphanumeric compares property names alphabetically with digit runs
// compared by numeric value, so --a2 sorts before --a10.
func Alphanumeric(a, b Property) int {
	return CompareNames(a.Name, b.Name)
}

// CompareNames is the three-way natural comparison behind Alphanumeric.
// Letters compare case-insensitively first; exact case breaks ties.
func CompareNames(a, b string) int {
	if c := naturalCompare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	if c := naturalCompare(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}

// ByValue orders properties by their declared value, then by name
func ByValue(a, b Property) int {
	if c := CompareNames(a.Decl.Value, b.Decl.Value); c != 0 {
		return c
	}
	return CompareNames(a.Name, b.Name)
}

var namedComparators = map[string]Comparator{
	"alphanumeric": Alphanumeric,
	"value":        ByValue,
}

// ComparatorByName looks up a built-in comparator for configuration files,
// which cannot carry functions
func ComparatorByName(name string) (Comparator, bool) {
	cmp, ok := namedComparators[strings.ToLower(strings.TrimSpace(name))]
	return cmp, ok
}

// sortProperties stably sorts seq in place
func sortProperties(seq []Property, order SortOrder) {
	sort.SliceStable(seq, func(i, j int) bool {
		return order.Compare(seq[i], seq[j]) < 0
	})
}
