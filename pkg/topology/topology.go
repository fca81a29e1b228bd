// Package topology tracks the ordered child lists the application has
// submitted for each parent element.
//
// Topology is submitted separately from element content. Each submission for
// a parent replaces that parent's previous list wholesale; there is no merge
// or diff. Child order is rendering order.
package topology

import (
	"slices"
	"sync"

	"github.com/go-xframes/xframes/pkg/element"
)

// Entry is the child list of one parent.
type Entry struct {
	Parent   element.ID
	Children []element.ID
}

// Registry maps parent IDs to ordered child lists.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[element.ID][]element.ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[element.ID][]element.ID)}
}

// Set replaces the child list of parent with a copy of children and returns
// the stored entry.
func (r *Registry) Set(parent element.ID, children []element.ID) Entry {
	list := slices.Clone(children)
	if list == nil {
		list = []element.ID{}
	}
	r.mu.Lock()
	r.entries[parent] = list
	r.mu.Unlock()
	return Entry{Parent: parent, Children: slices.Clone(list)}
}

// Children returns a copy of parent's child list. The boolean is false when
// no list has been set for parent.
func (r *Registry) Children(parent element.ID) ([]element.ID, bool) {
	r.mu.RLock()
	list, ok := r.entries[parent]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Parents returns the IDs that have a child list, in ascending order.
func (r *Registry) Parents() []element.ID {
	r.mu.RLock()
	ids := make([]element.ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// ParentOf returns the parent whose child list contains child.
func (r *Registry) ParentOf(child element.ID) (element.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for parent, list := range r.entries {
		if slices.Contains(list, child) {
			return parent, true
		}
	}
	return 0, false
}

// Remove drops parent's child list.
func (r *Registry) Remove(parent element.ID) {
	r.mu.Lock()
	delete(r.entries, parent)
	r.mu.Unlock()
}

// Len returns the number of parents with a child list.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns every entry ordered by parent ID.
func (r *Registry) Entries() []Entry {
	parents := r.Parents()
	out := make([]Entry, 0, len(parents))
	for _, p := range parents {
		if list, ok := r.Children(p); ok {
			out = append(out, Entry{Parent: p, Children: list})
		}
	}
	return out
}
