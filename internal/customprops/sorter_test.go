package customprops_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sortCSS parses source, runs a Sorter built from sortOrder over it and returns the output
func sortCSS(t *testing.T, source string, sortOrder any) (string, customprops.Result) {
	t.Helper()
	sheet, err := css.Parse(source)
	require.NoError(t, err)
	sorter, _ := customprops.New(sortOrder)
	result := sorter.Process(sheet)
	return sheet.String(), result
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "alphanumeric order with a blank line before other declarations",
			input: `:root {
  --b: 2;
  --a10: 1;
  color: red;
  --a2: 1;
}`,
			expected: `:root {
  --a2: 1;
  --a10: 1;
  --b: 2;

  color: red;
}`,
		},
		{
			name: "dependent moves after its dependency",
			input: `.a {
  --a: calc(var(--b) + 1);
  --b: 2px;
}`,
			expected: `.a {
  --b: 2px;
  --a: calc(var(--b) + 1);
}`,
		},
		{
			name: "dependent already after its dependency stays put",
			input: `.a {
  --b: var(--a);
  --a: red;
}`,
			expected: `.a {
  --a: red;
  --b: var(--a);
}`,
		},
		{
			name: "earlier duplicate is dropped",
			input: `.a {
  --x: 1;
  --y: 2;
  --x: 3;
}`,
			expected: `.a {
  --x: 3;
  --y: 2;
}`,
		},
		{
			name: "mutual references terminate",
			input: `.a {
  --a: var(--b);
  --b: var(--a);
}`,
			expected: `.a {
  --b: var(--a);
  --a: var(--b);
}`,
		},
		{
			name:     "single-line rule without trailing semicolon",
			input:    `.a{color:red;--x:1}`,
			expected: `.a{--x:1;color:red}`,
		},
		{
			name:     "single-line rule keeps its spacing",
			input:    `.a { color: red; --y: 2; --x: 1; }`,
			expected: `.a { --x: 1; --y: 2; color: red; }`,
		},
		{
			name: "rule without custom properties is untouched",
			input: `.a {
  color: red;
  margin: 0;
}`,
			expected: `.a {
  color: red;
  margin: 0;
}`,
		},
		{
			name: "rules nested in at-rules are sorted",
			input: `@media (min-width: 600px) {
  .a {
    --z: 1;
    --m: 2;
  }
}`,
			expected: `@media (min-width: 600px) {
  .a {
    --m: 2;
    --z: 1;
  }
}`,
		},
		{
			name: "blank lines between custom properties collapse",
			input: `.a {
  color: red;

  --b: 1;

  --a: 2;
}`,
			expected: `.a {
  --a: 2;
  --b: 1;

  color: red;
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _ := sortCSS(t, tt.input, nil)
			assert.Equal(t, tt.expected, output)
		})
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	inputs := []string{
		`:root {
  color: blue;
  --space-10: 10px;
  --space-2: 2px;
  --gap: calc(var(--space-2) * 2);
  --accent: var(--brand, hotpink);
  --brand: rebeccapurple;
  /* trailing */
  margin: 0;
}

.card { --z: var(--a); --a: 1px; padding: var(--z); }`,
		`.a{color:red;--x:1}`,
		`.a {
  --a: var(--b);
  --b: var(--c);
  --c: 1;
}`,
	}

	for _, input := range inputs {
		first, _ := sortCSS(t, input, nil)
		second, _ := sortCSS(t, first, nil)
		assert.Equal(t, first, second, "sorting sorted output should not change it")
	}
}

func TestProcessPreservesOtherNodes(t *testing.T) {
	input := `.a {
  color: red;
  --b: 1;
  /* note */
  margin: 0;
  --a: 2;
  padding: 1px;
}`
	output, _ := sortCSS(t, input, nil)

	for _, want := range []string{"color: red;", "/* note */", "margin: 0;", "padding: 1px;", "--a: 2;", "--b: 1;"} {
		assert.Equal(t, 1, strings.Count(output, want), "expected exactly one %q in output", want)
	}

	order := []string{"--a: 2;", "--b: 1;", "color: red;", "/* note */", "margin: 0;", "padding: 1px;"}
	last := -1
	for _, want := range order {
		idx := strings.Index(output, want)
		assert.Greater(t, idx, last, "%q is out of order in\n%s", want, output)
		last = idx
	}
}

func TestProcessDuplicateWarning(t *testing.T) {
	input := `.a {
  --x: 1;
  --y: 2;
  --x: 3;
}`
	_, result := sortCSS(t, input, nil)

	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, customprops.DuplicateProperty, w.Kind)
	assert.Equal(t, "Duplicate custom property found: --x. Only the last declaration will be kept.", w.Message)
	assert.Equal(t, "--x", w.Word)
	require.True(t, w.HasPosition)
	assert.Equal(t, uint32(3), w.Position.Line)
	assert.Equal(t, uint32(2), w.Position.Character)
	assert.Equal(t, "4:3: "+w.Message, w.String())
}

func TestProcessCountsRules(t *testing.T) {
	_, result := sortCSS(t, `.a { --b: 1; --a: 2; } .b { color: red; } @media print { .c { --x: 1; } }`, nil)
	assert.Equal(t, 3, result.Rules)
	assert.Empty(t, result.Warnings)
	assert.Zero(t, result.Unresolved)
}

func TestNewInvalidSortOrder(t *testing.T) {
	for _, option := range []any{"desc", 42, []string{"--a"}, map[string]any{}} {
		sorter, warnings := customprops.New(option)
		require.NotNil(t, sorter)
		require.Len(t, warnings, 1)
		assert.Equal(t, customprops.InvalidSortOrder, warnings[0].Kind)
		assert.Equal(t, "sortOrder", warnings[0].Word)
		assert.False(t, warnings[0].HasPosition)
		assert.True(t, sorter.Order().IsDefault())
	}

	output, result := sortCSS(t, `.a { --b: 1; --a: 2; }`, "desc")
	assert.Equal(t, `.a { --a: 2; --b: 1; }`, output)
	assert.Empty(t, result.Warnings, "option warnings are reported by New only")
}

func TestNewInvalidSortOrderIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	level := log.GetLevel()
	log.SetLevel(log.LevelInfo)
	defer log.SetLevel(level)

	_, warnings := customprops.New("alphabetical")
	require.Len(t, warnings, 1)
	assert.Empty(t, buf.String(), "callers report option warnings themselves")
}

func TestProcessTiesAreDeterministic(t *testing.T) {
	ties := func(a, b customprops.Property) int { return 0 }
	source := `.a { --a: var(--z); --b: var(--z); --c: var(--z); --z: 1; }`

	first, _ := sortCSS(t, source, ties)
	assert.Equal(t, `.a { --z: 1; --a: var(--z); --b: var(--z); --c: var(--z); }`, first)
	for range 100 {
		output, _ := sortCSS(t, source, ties)
		require.Equal(t, first, output)
	}
}

func TestNewCustomSortOrder(t *testing.T) {
	reverse := func(a, b customprops.Property) int {
		return customprops.CompareNames(b.Name, a.Name)
	}

	sorter, warnings := customprops.New(reverse)
	assert.Empty(t, warnings)
	assert.False(t, sorter.Order().IsDefault())

	output, _ := sortCSS(t, `.a { --a: 1; --c: 3; --b: 2; }`, reverse)
	assert.Equal(t, `.a { --c: 3; --b: 2; --a: 1; }`, output)

	// dependencies still win over the comparator
	output, _ = sortCSS(t, `.a { --c: var(--a); --a: 1; }`, customprops.Comparator(reverse))
	assert.Equal(t, `.a { --a: 1; --c: var(--a); }`, output)
}

func TestProcessRuleResult(t *testing.T) {
	sheet, err := css.Parse(`.a { --a: var(--b); --b: var(--c); --c: 1; --a: var(--b); }`)
	require.NoError(t, err)

	var rule *css.Container
	sheet.WalkRules(func(c *css.Container) { rule = c })
	require.NotNil(t, rule)

	sorter, _ := customprops.New(nil)
	result := sorter.ProcessRule(rule)
	assert.Equal(t, 3, result.Properties)
	assert.Equal(t, 2, result.Passes)
	assert.Zero(t, result.Unresolved)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, `.a { --c: 1; --b: var(--c); --a: var(--b); }`, sheet.String())
}
