package customprops_test

import (
	"testing"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(name, value string) customprops.Property {
	return customprops.Property{Name: name, Decl: css.NewDeclaration(name, value)}
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"--a", "--b", -1},
		{"--b", "--a", 1},
		{"--a2", "--a10", -1},
		{"--size-9", "--size-10", -1},
		{"--Color", "--color-bg", -1},
		{"--a", "--a", 0},
		{"--A", "--a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := customprops.CompareNames(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Run("nil selects the default", func(t *testing.T) {
		order, w := customprops.ParseSortOrder(nil)
		assert.Nil(t, w)
		assert.True(t, order.IsDefault())
	})

	t.Run("nil comparator selects the default", func(t *testing.T) {
		var cmp customprops.Comparator
		order, w := customprops.ParseSortOrder(cmp)
		assert.Nil(t, w)
		assert.True(t, order.IsDefault())
	})

	t.Run("comparator", func(t *testing.T) {
		order, w := customprops.ParseSortOrder(customprops.ByValue)
		assert.Nil(t, w)
		assert.False(t, order.IsDefault())
		assert.Negative(t, order.Compare(prop("--z", "1px"), prop("--a", "2px")))
	})

	t.Run("sort order passes through", func(t *testing.T) {
		order, w := customprops.ParseSortOrder(customprops.CustomSortOrder(customprops.ByValue))
		assert.Nil(t, w)
		assert.False(t, order.IsDefault())
	})

	t.Run("anything else warns", func(t *testing.T) {
		order, w := customprops.ParseSortOrder(true)
		require.NotNil(t, w)
		assert.Equal(t, customprops.InvalidSortOrder, w.Kind)
		assert.Equal(t, "invalid-sort-order", w.Kind.String())
		assert.True(t, order.IsDefault())
	})
}

func TestByValue(t *testing.T) {
	assert.Negative(t, customprops.ByValue(prop("--b", "1px"), prop("--a", "2px")))
	assert.Negative(t, customprops.ByValue(prop("--a", "red"), prop("--b", "red")), "equal values fall back to names")
}

func TestComparatorByName(t *testing.T) {
	cmp, ok := customprops.ComparatorByName(" Value ")
	require.True(t, ok)
	assert.Negative(t, cmp(prop("--b", "1"), prop("--a", "2")))

	_, ok = customprops.ComparatorByName("alphanumeric")
	assert.True(t, ok)

	_, ok = customprops.ComparatorByName("random")
	assert.False(t, ok)
}

func TestReferences(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"red", []string{}},
		{"var(--a)", []string{"--a"}},
		{"calc(var(--a) + var(--b, 1px))", []string{"--a", "--b"}},
		{"var(--a, var(--b))", []string{"--a"}},
		{"var(--shadow-color,rgba(0,0,0,.5))", []string{"--shadow-color"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, customprops.References(tt.value))
		})
	}
}
