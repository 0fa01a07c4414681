package css

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse is a convenience wrapper that borrows a pooled parser
func Parse(source string) (*Stylesheet, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Parse(source)
}

// Parse parses CSS source into a Stylesheet.
// Sources containing syntax errors are rejected so they are never rewritten.
func (p *Parser) Parse(source string) (*Stylesheet, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(root, src)
	}

	b := &builder{src: src}
	sheet := &Stylesheet{}
	prevEnd := root.StartByte()
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		n := b.node(child)
		n.Raws().Before = b.text(prevEnd, child.StartByte())
		sheet.nodes = append(sheet.nodes, n)
		prevEnd = child.EndByte()
	}
	// The root node may not start at byte 0 when the source begins with whitespace
	if first := root.StartByte(); first > 0 && len(sheet.nodes) > 0 {
		sheet.nodes[0].Raws().Before = b.text(0, first) + sheet.nodes[0].Raws().Before
	}
	if len(sheet.nodes) == 0 {
		sheet.After = source
	} else {
		sheet.After = b.text(prevEnd, uint(len(src)))
	}

	return sheet, nil
}

// syntaxErrorAt finds the first ERROR or MISSING node below n
func syntaxErrorAt(n *sitter.Node, src []byte) error {
	var found *sitter.Node
	var visit func(*sitter.Node)
	visit = func(node *sitter.Node) {
		if found != nil || node == nil {
			return
		}
		if node.IsError() || node.IsMissing() {
			found = node
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			visit(node.Child(i))
		}
	}
	visit(n)
	if found == nil {
		found = n
	}

	snippet := found.Utf8Text(src)
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	return NewSyntaxError(positionOf(found), snippet)
}

type builder struct {
	src []byte
}

func (b *builder) text(start, end uint) string {
	if end <= start {
		return ""
	}
	return string(b.src[start:end])
}

// node converts a tree-sitter statement into a tree node
func (b *builder) node(n *sitter.Node) Node {
	if n.Kind() == "declaration" {
		return b.declaration(n)
	}
	if block := blockChild(n); block != nil {
		return b.container(n, block)
	}
	return &Raw{
		Text:     b.text(n.StartByte(), n.EndByte()),
		Position: positionOf(n),
	}
}

// declaration handles a CSS declaration node
func (b *builder) declaration(n *sitter.Node) *Declaration {
	var propEnd, colonEnd uint
	valueEnd := n.EndByte()
	decl := &Declaration{Position: positionOf(n)}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "property_name":
			decl.Prop = b.text(child.StartByte(), child.EndByte())
			propEnd = child.EndByte()
		case ":":
			if colonEnd == 0 {
				colonEnd = child.EndByte()
			}
		case ";":
			valueEnd = child.StartByte()
		}
	}

	raw := b.text(colonEnd, valueEnd)
	value := strings.TrimSpace(raw)
	leading := len(raw) - len(strings.TrimLeft(raw, " \t\r\n\f"))

	decl.Value = value
	decl.raws.Between = b.text(propEnd, colonEnd) + raw[:leading]
	decl.raws.After = raw[leading+len(value):]
	return decl
}

// container handles any node that owns a block: style rules and block at-rules
func (b *builder) container(n, block *sitter.Node) *Container {
	c := &Container{
		Kind:      RuleKind,
		Prelude:   b.text(n.StartByte(), block.StartByte()),
		Semicolon: true,
		Position:  positionOf(n),
		tail:      b.text(block.EndByte(), n.EndByte()),
	}
	if n.Kind() != "rule_set" {
		c.Kind = AtRuleKind
		if first := n.Child(0); first != nil {
			c.Name = b.text(first.StartByte(), first.EndByte())
		}
	}

	count := block.ChildCount()
	if count < 2 {
		return c
	}
	prevEnd := block.Child(0).EndByte() // after "{"
	for i := uint(1); i < count-1; i++ {
		child := block.Child(i)
		node := b.node(child)
		node.Raws().Before = b.text(prevEnd, child.StartByte())
		node.setParent(c)
		c.nodes = append(c.nodes, node)
		prevEnd = child.EndByte()

		if _, ok := node.(*Declaration); ok {
			c.Semicolon = hasSemicolon(child)
		}
	}
	c.raws.After = b.text(prevEnd, block.Child(count-1).StartByte())
	return c
}

func blockChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "block" {
			return child
		}
	}
	return nil
}

func hasSemicolon(decl *sitter.Node) bool {
	count := decl.ChildCount()
	return count > 0 && decl.Child(count-1).Kind() == ";"
}

func positionOf(n *sitter.Node) Position {
	p := n.StartPosition()
	return Position{Line: uint32(p.Row), Character: uint32(p.Column)}
}
