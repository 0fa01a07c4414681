package collections

// Set is an unordered set backed by a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a Set holding vs
func NewSet[T comparable](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add inserts vs
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is a member
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members
func (s Set[T]) Len() int {
	return len(s)
}

// Edges is a directed adjacency map: each key points at the set of its targets
type Edges[T comparable] map[T]Set[T]

// NewEdges creates an empty adjacency map
func NewEdges[T comparable]() Edges[T] {
	return make(Edges[T])
}

// Link adds the edge from -> to. Self edges are ignored.
func (e Edges[T]) Link(from, to T) {
	if from == to {
		return
	}
	targets, ok := e[from]
	if !ok {
		targets = NewSet[T]()
		e[from] = targets
	}
	targets.Add(to)
}

// Targets returns the targets of from; nil when from has no edges
func (e Edges[T]) Targets(from T) Set[T] {
	return e[from]
}
