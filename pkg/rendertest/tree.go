package rendertest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-xframes/xframes/pkg/element"
)

// Node is one element of the retained tree.
type Node struct {
	element.Descriptor
	Children []*Node
}

// Roots returns the trees rooted at every descriptor marked root, by ID.
// Child IDs with no descriptor are skipped; IDs already on the current path
// are not descended into again.
func (r *Renderer) Roots() []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	var roots []element.ID
	for id, d := range r.elements {
		if d.Root {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	out := make([]*Node, 0, len(roots))
	for _, id := range roots {
		out = append(out, r.build(id, map[element.ID]bool{}))
	}
	return out
}

func (r *Renderer) build(id element.ID, path map[element.ID]bool) *Node {
	n := &Node{Descriptor: r.elements[id]}
	path[id] = true
	for _, c := range r.children[id] {
		if _, ok := r.elements[c]; !ok || path[c] {
			continue
		}
		n.Children = append(n.Children, r.build(c, path))
	}
	delete(path, id)
	return n
}

// Dump renders the retained tree as indented text, one element per line.
func (r *Renderer) Dump() string {
	var b strings.Builder
	for _, root := range r.Roots() {
		dump(&b, root, 0)
	}
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Descriptor.String())
	if text, ok := n.Text(); ok {
		fmt.Fprintf(b, " %q", text)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		dump(b, c, depth+1)
	}
}
