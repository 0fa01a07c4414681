package customprops

import (
	"regexp"
	"strings"

	"bennypowers.dev/cpsort/internal/collections"
	"bennypowers.dev/cpsort/internal/parser/css"
)

// varReferenceRegexp matches var(--name) and var(--name, fallback) up to the first ')'
var varReferenceRegexp = regexp.MustCompile(`var\((--[^)]+)\)`)

// collection holds the custom properties of one rule
type collection struct {
	// props maps name to the surviving declaration in last-write order
	props *collections.OrderedMap[string, *css.Declaration]
	// dependents maps a referenced name to the names whose values reference it
	dependents collections.Edges[string]
}

// collect gathers the custom property declarations of rule.
// The rule itself is not modified; reinsertion replaces its children afterwards.
func collect(rule *css.Container) (*collection, []Warning) {
	c := &collection{
		props:      collections.NewOrderedMap[string, *css.Declaration](),
		dependents: collections.NewEdges[string](),
	}
	var warnings []Warning

	for _, decl := range rule.Declarations() {
		if !decl.IsCustomProperty() {
			continue
		}
		name := decl.Prop

		if c.props.Has(name) {
			warnings = append(warnings, duplicatePropertyWarning(decl))
			c.props.Delete(name)
		}

		for _, ref := range References(decl.Value) {
			c.dependents.Link(ref, name)
		}

		c.props.Set(name, decl)
	}

	return c, warnings
}

// References returns the custom property names referenced through var() in value,
// in order of appearance. A fallback after a comma is not part of the name.
func References(value string) []string {
	matches := varReferenceRegexp.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, match := range matches {
		name, _, _ := strings.Cut(match[1], ",")
		name = strings.TrimSpace(name)
		if name != "" {
			refs = append(refs, name)
		}
	}
	return refs
}

// properties returns the collected pairs in last-write order
func (c *collection) properties() []Property {
	seq := make([]Property, 0, c.props.Len())
	c.props.Each(func(name string, decl *css.Declaration) {
		seq = append(seq, Property{Name: name, Decl: decl})
	})
	return seq
}
