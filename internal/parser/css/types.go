package css

import "strings"

// Position represents a position in a text document.
// Line and Character are 0-indexed; Character counts bytes.
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a text document
type Range struct {
	Start Position
	End   Position
}

// Raws holds the formatting text around a node
type Raws struct {
	// Before is the whitespace preceding the node
	Before string
	// Between is the text between a declaration's property and its value (the colon and surrounding spaces)
	Between string
	// After is the whitespace after a declaration's value, or before a container's closing brace
	After string
}

// Node is a child of a Stylesheet or Container
type Node interface {
	// Raws returns the node's mutable formatting metadata
	Raws() *Raws
	// Parent returns the container holding the node, or nil for top-level nodes
	Parent() *Container
	setParent(*Container)
}

// ContainerKind distinguishes style rules from at-rules with a block
type ContainerKind int

const (
	// RuleKind is a style rule (selector { ... })
	RuleKind ContainerKind = iota
	// AtRuleKind is an at-rule with a block (@media ... { ... })
	AtRuleKind
)

// Declaration is a single `property: value` pair
type Declaration struct {
	Prop     string
	Value    string
	Position Position

	raws   Raws
	parent *Container
}

// Raws returns the declaration's formatting metadata
func (d *Declaration) Raws() *Raws { return &d.raws }

// Parent returns the container holding the declaration
func (d *Declaration) Parent() *Container { return d.parent }

func (d *Declaration) setParent(c *Container) { d.parent = c }

// IsCustomProperty reports whether the declaration is a CSS custom property (--name)
func (d *Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Prop, "--")
}

// NewDeclaration creates a detached declaration with the usual `: ` separator
func NewDeclaration(prop, value string) *Declaration {
	return &Declaration{Prop: prop, Value: value, raws: Raws{Between: ": "}}
}

// Raw is any child that the tree keeps as opaque text: comments and at-rules without a block
type Raw struct {
	Text     string
	Position Position

	raws   Raws
	parent *Container
}

// Raws returns the raw node's formatting metadata
func (r *Raw) Raws() *Raws { return &r.raws }

// Parent returns the container holding the raw node
func (r *Raw) Parent() *Container { return r.parent }

func (r *Raw) setParent(c *Container) { r.parent = c }

// Container is a style rule or an at-rule with a `{ ... }` block
type Container struct {
	Kind ContainerKind
	// Name is the at-keyword (e.g. "@media") for at-rules, empty for style rules
	Name string
	// Prelude is the source text before the opening brace, including trailing whitespace
	Prelude string
	// Semicolon records whether the last declaration in the block was terminated with ';'
	Semicolon bool
	Position  Position

	nodes  []Node
	tail   string
	raws   Raws
	parent *Container
}

// Raws returns the container's formatting metadata
func (c *Container) Raws() *Raws { return &c.raws }

// Parent returns the enclosing container, or nil at the top level
func (c *Container) Parent() *Container { return c.parent }

func (c *Container) setParent(p *Container) { c.parent = p }

// Selector returns the rule's selector text without trailing whitespace
func (c *Container) Selector() string {
	return strings.TrimSpace(c.Prelude)
}

// Stylesheet is the root of a parsed CSS document
type Stylesheet struct {
	nodes []Node
	// After is the text following the last top-level node
	After string
}
