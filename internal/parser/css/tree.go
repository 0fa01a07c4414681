package css

import "slices"

// Nodes returns a copy of the stylesheet's top-level nodes
func (s *Stylesheet) Nodes() []Node {
	return slices.Clone(s.nodes)
}

// Walk visits every container depth-first in document order.
// Returning false from fn skips the container's children.
func (s *Stylesheet) Walk(fn func(*Container) bool) {
	walkNodes(s.nodes, fn)
}

// WalkRules visits every style rule, including rules nested in at-rules and other rules
func (s *Stylesheet) WalkRules(fn func(*Container)) {
	s.Walk(func(c *Container) bool {
		if c.Kind == RuleKind {
			fn(c)
		}
		return true
	})
}

func walkNodes(nodes []Node, fn func(*Container) bool) {
	for _, n := range nodes {
		c, ok := n.(*Container)
		if !ok {
			continue
		}
		if fn(c) {
			walkNodes(c.nodes, fn)
		}
	}
}

// Nodes returns a copy of the container's children
func (c *Container) Nodes() []Node {
	return slices.Clone(c.nodes)
}

// Declarations returns the container's direct declaration children in document order
func (c *Container) Declarations() []*Declaration {
	var decls []*Declaration
	for _, n := range c.nodes {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Index returns the position of node among the container's children, or -1
func (c *Container) Index(node Node) int {
	return slices.Index(c.nodes, node)
}

// Next returns the sibling following node, or nil
func (c *Container) Next(node Node) Node {
	i := c.Index(node)
	if i < 0 || i+1 >= len(c.nodes) {
		return nil
	}
	return c.nodes[i+1]
}

// Remove detaches node from the container. It reports whether node was a child.
func (c *Container) Remove(node Node) bool {
	i := c.Index(node)
	if i < 0 {
		return false
	}
	c.nodes = slices.Delete(c.nodes, i, i+1)
	node.setParent(nil)
	return true
}

// Prepend inserts nodes at the start of the container, keeping their order
func (c *Container) Prepend(nodes ...Node) {
	c.adopt(nodes)
	c.nodes = append(slices.Clone(nodes), c.nodes...)
}

// Append inserts nodes at the end of the container
func (c *Container) Append(nodes ...Node) {
	c.adopt(nodes)
	c.nodes = append(c.nodes, nodes...)
}

// ReplaceChildren swaps the container's entire child list for nodes.
// Previous children that are not in nodes are detached.
func (c *Container) ReplaceChildren(nodes []Node) {
	for _, old := range c.nodes {
		if !slices.Contains(nodes, old) {
			old.setParent(nil)
		}
	}
	for _, n := range nodes {
		if p := n.Parent(); p != nil && p != c {
			p.Remove(n)
		}
		n.setParent(c)
	}
	c.nodes = slices.Clone(nodes)
}

// adopt detaches nodes from wherever they currently live, including c itself
func (c *Container) adopt(nodes []Node) {
	for _, n := range nodes {
		if p := n.Parent(); p != nil {
			p.Remove(n)
		}
		n.setParent(c)
	}
}
