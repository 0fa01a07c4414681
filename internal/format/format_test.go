package format_test

import (
	"testing"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/format"
	"bennypowers.dev/cpsort/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSorter(t *testing.T) *customprops.Sorter {
	t.Helper()
	sorter, warnings := customprops.New(nil)
	require.Empty(t, warnings)
	return sorter
}

func TestFormatCSS(t *testing.T) {
	source := `:root {
  color: black;
  --spacing-10: 10px;
  --spacing-2: 2px;
  --gap: calc(var(--spacing-2) * 2);
  --brand: rebeccapurple;
  --accent: var(--brand);
}

@media (prefers-color-scheme: dark) {
  :root {
    --brand: black;
    --accent: white;
  }
}
`
	expected := `:root {
  --brand: rebeccapurple;
  --accent: var(--brand);
  --spacing-2: 2px;
  --gap: calc(var(--spacing-2) * 2);
  --spacing-10: 10px;

  color: black;
}

@media (prefers-color-scheme: dark) {
  :root {
    --accent: white;
    --brand: black;
  }
}
`
	result, err := format.Format(source, format.CSS, defaultSorter(t))
	require.NoError(t, err)
	assert.Equal(t, expected, result.Output)
	assert.True(t, result.Changed)
	assert.Empty(t, result.Warnings)

	again, err := format.Format(result.Output, format.CSS, defaultSorter(t))
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, result.Output, again.Output)
}

func TestFormatCSSSyntaxError(t *testing.T) {
	_, err := format.Format(".a { --x: ", format.CSS, defaultSorter(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, css.ErrSyntax)
}

func TestFormatHTML(t *testing.T) {
	source := `<style>
  .a {
    --b: 1;
    --a: 2;
  }
</style>
<p>x</p>
<style>.b { --d: 1; --c: var(--d); }</style>
`
	expected := `<style>
  .a {
    --a: 2;
    --b: 1;
  }
</style>
<p>x</p>
<style>.b { --d: 1; --c: var(--d); }</style>
`
	result, err := format.Format(source, format.HTML, defaultSorter(t))
	require.NoError(t, err)
	assert.Equal(t, expected, result.Output)
	assert.True(t, result.Changed)
}

func TestFormatHTMLWarningPositions(t *testing.T) {
	source := "<p>x</p>\n<style>.a { --x: 1; --x: 2; }</style>\n"

	result, err := format.Format(source, format.HTML, defaultSorter(t))
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>\n<style>.a { --x: 2; }</style>\n", result.Output)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, customprops.DuplicateProperty, w.Kind)
	assert.Equal(t, uint32(1), w.Position.Line)
	assert.Equal(t, uint32(20), w.Position.Character)
}

func TestFormatHTMLSkipsBrokenRegions(t *testing.T) {
	source := "<style>.a { --b: 1; --a: 2;</style>\n<style>.b { --b: 1; --a: 2; }</style>"

	result, err := format.Format(source, format.HTML, defaultSorter(t))
	require.NoError(t, err)
	assert.Equal(t, "<style>.a { --b: 1; --a: 2;</style>\n<style>.b { --a: 2; --b: 1; }</style>", result.Output)
}

func TestFormatJS(t *testing.T) {
	source := "const styles = css`\n  :host {\n    --b: 1;\n    --a: 2;\n  }\n`;\nconst skipped = css`:host { --b: ${b}; --a: 1; }`;\n"
	expected := "const styles = css`\n  :host {\n    --a: 2;\n    --b: 1;\n  }\n`;\nconst skipped = css`:host { --b: ${b}; --a: 1; }`;\n"

	result, err := format.Format(source, format.JS, defaultSorter(t))
	require.NoError(t, err)
	assert.Equal(t, expected, result.Output)
	assert.True(t, result.Changed)
}

func TestFormatUnchanged(t *testing.T) {
	result, err := format.Format("<div></div>", format.HTML, defaultSorter(t))
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, "<div></div>", result.Output)
}

func TestFormatUnsupportedLanguage(t *testing.T) {
	_, err := format.Format("{}", format.Unknown, defaultSorter(t))
	assert.ErrorIs(t, err, format.ErrUnsupportedLanguage)
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, format.CSS, format.LanguageFromPath("a/b/style.CSS"))
	assert.Equal(t, format.HTML, format.LanguageFromPath("index.html"))
	assert.Equal(t, format.JS, format.LanguageFromPath("element.ts"))
	assert.Equal(t, format.JS, format.LanguageFromPath("App.tsx"))
	assert.Equal(t, format.Unknown, format.LanguageFromPath("tokens.json"))

	assert.Equal(t, format.JS, format.LanguageFromID("typescriptreact"))
	assert.Equal(t, format.CSS, format.LanguageFromID("css"))
	assert.Equal(t, format.Unknown, format.LanguageFromID("scss"))
	assert.Equal(t, "html", format.HTML.String())
}
