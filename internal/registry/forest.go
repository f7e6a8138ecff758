// Package registry holds the forest of declared tests.
//
// Declarations populate a Forest during package initialisation; the forest is
// sealed when the first run or listing starts and is read-only from then on,
// so traversals need no locking. Within a group, traversal visits the most
// recently declared test first.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrSealed            = errors.New("registry is sealed")
	ErrDuplicateName     = errors.New("duplicate test name")
	ErrUnknownDescriptor = errors.New("descriptor is not registered")
	ErrCycle             = errors.New("precedence cycle")
)

// Group is the set of descriptors declared in one scope, usually one file.
type Group struct {
	Name string

	// children are kept in declaration order; traversal walks them backwards.
	children []*Descriptor
}

// Len returns the number of descriptors in the group.
func (g *Group) Len() int {
	return len(g.children)
}

// Descriptors returns the group's descriptors, most recently declared first.
func (g *Group) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(g.children))
	for i := len(g.children) - 1; i >= 0; i-- {
		out = append(out, g.children[i])
	}
	return out
}

// Edge orders After to run only once Before has completed.
type Edge struct {
	Before *Descriptor
	After  *Descriptor
}

// Forest is an ordered collection of groups.
type Forest struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	groups  []*Group
	byName  map[string]*Group
	members map[*Descriptor]string
	edges   []Edge
}

// New creates an empty Forest.
func New() *Forest {
	return &Forest{
		byName:  make(map[string]*Group),
		members: make(map[*Descriptor]string),
	}
}

// Register inserts d as the new head of group, creating the group on first use.
func (f *Forest) Register(d *Descriptor, group string) error {
	if f.sealed.Load() {
		return fmt.Errorf("register %q: %w", d.Name, ErrSealed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	g, ok := f.byName[group]
	if !ok {
		g = &Group{Name: group}
		f.byName[group] = g
		f.groups = append(f.groups, g)
	}
	for _, existing := range g.children {
		if existing.Name == d.Name {
			return fmt.Errorf("register %q in %s: %w", d.Name, group, ErrDuplicateName)
		}
	}
	g.children = append(g.children, d)
	f.members[d] = group
	return nil
}

// Precede declares that after must not start before before has finished.
func (f *Forest) Precede(before, after *Descriptor) error {
	if before == after {
		return fmt.Errorf("%w: %q cannot precede itself", ErrCycle, before.Name)
	}
	if f.sealed.Load() {
		return fmt.Errorf("order %q after %q: %w", after.Name, before.Name, ErrSealed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range []*Descriptor{before, after} {
		if _, ok := f.members[d]; !ok {
			return fmt.Errorf("order %q after %q: %w: %q", after.Name, before.Name, ErrUnknownDescriptor, d.Name)
		}
	}
	for _, e := range f.edges {
		if e.Before == before && e.After == after {
			return nil
		}
	}
	f.edges = append(f.edges, Edge{Before: before, After: after})
	return nil
}

// Seal freezes the forest. Further registrations fail with ErrSealed.
func (f *Forest) Seal() {
	f.sealed.Store(true)
}

// Sealed reports whether Seal has been called.
func (f *Forest) Sealed() bool {
	return f.sealed.Load()
}

// ForEachGroup calls fn for each group in creation order until fn returns false.
func (f *Forest) ForEachGroup(fn func(*Group) bool) {
	for _, g := range f.snapshot() {
		if !fn(g) {
			return
		}
	}
}

// ForEachDescriptor calls fn for each descriptor in forest order until fn returns false.
func (f *Forest) ForEachDescriptor(fn func(*Descriptor) bool) {
	f.ForEachGroup(func(g *Group) bool {
		for i := len(g.children) - 1; i >= 0; i-- {
			if !fn(g.children[i]) {
				return false
			}
		}
		return true
	})
}

// Descriptors returns every descriptor in forest order.
func (f *Forest) Descriptors() []*Descriptor {
	var out []*Descriptor
	f.ForEachDescriptor(func(d *Descriptor) bool {
		out = append(out, d)
		return true
	})
	return out
}

// GroupOf returns the name of the group d was registered in.
func (f *Forest) GroupOf(d *Descriptor) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.members[d]
	return g, ok
}

// Edges returns the declared precedence edges in declaration order.
func (f *Forest) Edges() []Edge {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Edge(nil), f.edges...)
}

// Len returns the number of descriptors, placeholders included.
func (f *Forest) Len() int {
	n := 0
	f.ForEachGroup(func(g *Group) bool {
		n += g.Len()
		return true
	})
	return n
}

// NumTests returns the number of descriptors that are not placeholders.
func (f *Forest) NumTests() int {
	n := 0
	f.ForEachDescriptor(func(d *Descriptor) bool {
		if !d.Placeholder {
			n++
		}
		return true
	})
	return n
}

// snapshot returns the group list. Once sealed the slice never changes, so the
// lock only matters for callers that traverse during registration.
func (f *Forest) snapshot() []*Group {
	if f.sealed.Load() {
		return f.groups
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Group(nil), f.groups...)
}
