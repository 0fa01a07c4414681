package css

import "strings"

// String serializes the stylesheet.
// An unmodified stylesheet serializes to exactly the source it was parsed from.
func (s *Stylesheet) String() string {
	var b strings.Builder
	writeNodes(&b, s.nodes, true)
	b.WriteString(s.After)
	return b.String()
}

// String serializes the container and its children
func (c *Container) String() string {
	var b strings.Builder
	c.write(&b)
	return b.String()
}

// String serializes the declaration without its leading whitespace or terminator
func (d *Declaration) String() string {
	return d.Prop + d.raws.Between + d.Value
}

func (c *Container) write(b *strings.Builder) {
	b.WriteString(c.Prelude)
	b.WriteByte('{')
	writeNodes(b, c.nodes, c.Semicolon)
	b.WriteString(c.raws.After)
	b.WriteByte('}')
	b.WriteString(c.tail)
}

// writeNodes prints a child list. A declaration is terminated with ';' when a
// declaration or container follows it; the final declaration follows semicolon.
func writeNodes(b *strings.Builder, nodes []Node, semicolon bool) {
	for i, n := range nodes {
		b.WriteString(n.Raws().Before)
		switch n := n.(type) {
		case *Declaration:
			b.WriteString(n.String())
			b.WriteString(n.raws.After)
			if semicolon || followedByStatement(nodes[i+1:]) {
				b.WriteByte(';')
			}
		case *Container:
			n.write(b)
		case *Raw:
			b.WriteString(n.Text)
		}
	}
}

func followedByStatement(rest []Node) bool {
	for _, n := range rest {
		if _, ok := n.(*Raw); !ok {
			return true
		}
	}
	return false
}
