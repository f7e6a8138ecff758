package registry

import (
	"fmt"
	"sort"
)

// Graph is the precedence view of a forest: every descriptor in forest order
// plus, for each, the descriptors that must wait for it.
type Graph struct {
	Nodes      []*Descriptor
	Dependents map[*Descriptor][]*Descriptor
	DepCount   map[*Descriptor]int
}

// Graph builds the precedence graph. Dependents are listed in forest order.
func (f *Forest) Graph() *Graph {
	nodes := f.Descriptors()
	index := make(map[*Descriptor]int, len(nodes))
	for i, d := range nodes {
		index[d] = i
	}

	g := &Graph{
		Nodes:      nodes,
		Dependents: make(map[*Descriptor][]*Descriptor),
		DepCount:   make(map[*Descriptor]int, len(nodes)),
	}
	for _, e := range f.Edges() {
		g.Dependents[e.Before] = append(g.Dependents[e.Before], e.After)
		g.DepCount[e.After]++
	}
	for _, deps := range g.Dependents {
		sort.Slice(deps, func(i, j int) bool { return index[deps[i]] < index[deps[j]] })
	}
	return g
}

// DetectCycles returns an error wrapping ErrCycle when the precedence edges
// contain a cycle, naming a descriptor on it.
func (g *Graph) DetectCycles() error {
	// permanent: fully explored and not on a cycle; temporary: on the current DFS path.
	permanent := make(map[*Descriptor]bool)
	temporary := make(map[*Descriptor]bool)

	var visit func(d *Descriptor) error
	visit = func(d *Descriptor) error {
		if permanent[d] {
			return nil
		}
		if temporary[d] {
			return fmt.Errorf("%w involving %q (%s)", ErrCycle, d.Name, d.Source)
		}
		temporary[d] = true
		for _, next := range g.Dependents[d] {
			if err := visit(next); err != nil {
				return err
			}
		}
		delete(temporary, d)
		permanent[d] = true
		return nil
	}

	for _, d := range g.Nodes {
		if err := visit(d); err != nil {
			return err
		}
	}
	return nil
}

// Order returns the descriptors so that every descriptor follows all of its
// precedents. Among descriptors that are ready at the same time, forest order
// wins, so a forest without edges comes back unchanged.
func (g *Graph) Order() ([]*Descriptor, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	index := make(map[*Descriptor]int, len(g.Nodes))
	remaining := make(map[*Descriptor]int, len(g.Nodes))
	var ready []int
	for i, d := range g.Nodes {
		index[d] = i
		remaining[d] = g.DepCount[d]
		if remaining[d] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]*Descriptor, 0, len(g.Nodes))
	for len(ready) > 0 {
		d := g.Nodes[ready[0]]
		ready = ready[1:]
		out = append(out, d)
		for _, next := range g.Dependents[d] {
			remaining[next]--
			if remaining[next] == 0 {
				i := index[next]
				pos := sort.SearchInts(ready, i)
				ready = append(ready, 0)
				copy(ready[pos+1:], ready[pos:])
				ready[pos] = i
			}
		}
	}
	return out, nil
}
