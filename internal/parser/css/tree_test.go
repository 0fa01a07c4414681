package css_test

import (
	"testing"

	"bennypowers.dev/cpsort/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRule(t *testing.T, source string) (*css.Stylesheet, *css.Container) {
	t.Helper()
	sheet, err := css.Parse(source)
	require.NoError(t, err)
	var rule *css.Container
	sheet.WalkRules(func(c *css.Container) {
		if rule == nil {
			rule = c
		}
	})
	require.NotNil(t, rule)
	return sheet, rule
}

func TestContainerMutation(t *testing.T) {
	t.Run("Remove detaches a declaration", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a { --x: 1; color: red; }")
		decl := rule.Declarations()[0]

		assert.True(t, rule.Remove(decl))
		assert.Nil(t, decl.Parent())
		assert.False(t, rule.Remove(decl), "second removal is a no-op")
		assert.Equal(t, ".a { color: red; }", sheet.String())
	})

	t.Run("Prepend moves a declaration to the top", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a {\n  color: red;\n  --x: 1;\n}")
		decls := rule.Declarations()

		rule.Prepend(decls[1])
		assert.Equal(t, ".a {\n  --x: 1;\n  color: red;\n}", sheet.String())
		assert.Len(t, rule.Nodes(), 2, "prepending an existing child must not duplicate it")
	})

	t.Run("Next returns the following sibling", func(t *testing.T) {
		_, rule := parseRule(t, ".a { --x: 1; color: red; }")
		decls := rule.Declarations()

		assert.Same(t, decls[1], rule.Next(decls[0]))
		assert.Nil(t, rule.Next(decls[1]))
		assert.Equal(t, 1, rule.Index(decls[1]))
	})

	t.Run("ReplaceChildren reorders in one step", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a { --b: 2; --a: 1; }")
		decls := rule.Declarations()

		rule.ReplaceChildren([]css.Node{decls[1], decls[0]})
		assert.Equal(t, ".a { --a: 1; --b: 2; }", sheet.String())
		assert.Same(t, rule, decls[0].Parent())
	})

	t.Run("ReplaceChildren detaches dropped nodes", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a { --x: 1; --x: 2; }")
		decls := rule.Declarations()

		rule.ReplaceChildren([]css.Node{decls[1]})
		assert.Nil(t, decls[0].Parent())
		assert.Equal(t, ".a { --x: 2; }", sheet.String())
	})

	t.Run("moving an unterminated declaration adds a terminator", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a{color:red;--x:1}")
		decls := rule.Declarations()

		rule.ReplaceChildren([]css.Node{decls[1], decls[0]})
		assert.Equal(t, ".a{--x:1;color:red}", sheet.String())
	})

	t.Run("Append and NewDeclaration", func(t *testing.T) {
		sheet, rule := parseRule(t, ".a { color: red; }")
		decl := css.NewDeclaration("--x", "1px")
		decl.Raws().Before = " "

		rule.Append(decl)
		assert.Equal(t, ".a { color: red; --x: 1px; }", sheet.String())
		assert.Equal(t, "--x: 1px", decl.String())
	})
}
