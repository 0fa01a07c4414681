package customprops

import (
	"strings"

	"bennypowers.dev/cpsort/internal/log"
	"bennypowers.dev/cpsort/internal/parser/css"
)

// Sorter reorders the custom properties of style rules
type Sorter struct {
	order SortOrder
}

// RuleResult describes the processing of a single rule
type RuleResult struct {
	Warnings []Warning
	// Properties is the number of distinct custom properties in the rule
	Properties int
	// Passes is the number of dependency reinsertion passes
	Passes int
	// Unresolved counts dependent groups force-appended after the pass limit
	Unresolved int
}

// Result describes the processing of a stylesheet
type Result struct {
	Warnings   []Warning
	Rules      int
	Unresolved int
}

// New creates a Sorter. sortOrder is validated once here: see ParseSortOrder.
// The returned warnings concern the options, not any stylesheet.
func New(sortOrder any) (*Sorter, []Warning) {
	order, w := ParseSortOrder(sortOrder)
	if w != nil {
		log.Debug("invalid sort order: %s", w.Message)
		return &Sorter{order: order}, []Warning{*w}
	}
	return &Sorter{order: order}, nil
}

// NewWithOrder creates a Sorter from an already validated order
func NewWithOrder(order SortOrder) *Sorter {
	return &Sorter{order: order}
}

// Order returns the sort order in use
func (s *Sorter) Order() SortOrder {
	return s.order
}

// Process sorts the custom properties of every style rule in sheet, in place
func (s *Sorter) Process(sheet *css.Stylesheet) Result {
	var result Result
	sheet.WalkRules(func(rule *css.Container) {
		r := s.ProcessRule(rule)
		result.Rules++
		result.Warnings = append(result.Warnings, r.Warnings...)
		result.Unresolved += r.Unresolved
	})
	return result
}

// ProcessRule sorts the custom properties of one rule and moves them to the top of it.
func (s *Sorter) ProcessRule(rule *css.Container) RuleResult {
	coll, warnings := collect(rule)
	if coll.props.Len() == 0 {
		return RuleResult{Warnings: warnings}
	}

	seq := coll.properties()
	sortProperties(seq, s.order)
	res := resolve(seq, coll.dependents, s.order)

	reinsert(rule, res.seq)

	log.Debug("sorted %d custom properties in %q (%d passes)", len(res.seq), rule.Selector(), res.passes)

	return RuleResult{
		Warnings:   warnings,
		Properties: len(res.seq),
		Passes:     res.passes,
		Unresolved: res.unresolved,
	}
}

// reinsert replaces the rule's children with the sorted custom properties
// followed by every other child in its original order. Earlier duplicates of a
// custom property are dropped.
func reinsert(rule *css.Container, props []Property) {
	nodes := make([]css.Node, 0, len(rule.Nodes()))
	for _, p := range props {
		raws := p.Decl.Raws()
		raws.Before = collapseBlankLines(raws.Before)
		nodes = append(nodes, p.Decl)
	}

	var rest []css.Node
	for _, n := range rule.Nodes() {
		if d, ok := n.(*css.Declaration); ok && d.IsCustomProperty() {
			continue
		}
		rest = append(rest, n)
	}

	if len(rest) > 0 {
		raws := rest[0].Raws()
		raws.Before = ensureBlankLine(raws.Before)
	}

	rule.ReplaceChildren(append(nodes, rest...))
}

// collapseBlankLines reduces multi-line leading whitespace to its final line break and indentation
func collapseBlankLines(before string) string {
	if strings.Count(before, "\n") < 2 || strings.TrimSpace(before) != "" {
		return before
	}
	return before[strings.LastIndex(before, "\n"):]
}

// ensureBlankLine adds an empty line in front of whitespace that breaks onto a new line.
// Single-line rules stay on one line.
func ensureBlankLine(before string) string {
	if strings.TrimSpace(before) != "" || strings.Count(before, "\n") != 1 {
		return before
	}
	return "\n" + before
}
