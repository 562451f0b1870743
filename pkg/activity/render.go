package activity

import (
	"fmt"
	"iter"
	"strings"
)

// Indent is the per-depth indentation of rendered lines.
const Indent = "    "

// Entry is a child activity visited by Walk.
type Entry struct {
	Name string
	Path string
	Node *Node
}

// Walk visits every child activity depth first, in insertion order, yielding
// the depth of each entry. Scalar fields are not visited.
func Walk(tree *Tree) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		walk(tree, "", 0, yield)
	}
}

func walk(n *Node, prefix string, depth int, yield func(int, Entry) bool) bool {
	for _, key := range n.Keys() {
		c, ok := n.Child(key)
		if !ok {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if !yield(depth, Entry{Name: key, Path: path, Node: c}) {
			return false
		}
		if !walk(c, path, depth+1, yield) {
			return false
		}
	}
	return true
}

// Line formats a single entry the way Render does.
func Line(depth int, e Entry) string {
	return fmt.Sprintf("%s%s (%d minutes)", strings.Repeat(Indent, depth), e.Name, e.Node.Time())
}

// Render lazily produces the printable lines of the tree.
func Render(tree *Tree) iter.Seq[string] {
	return func(yield func(string) bool) {
		for depth, e := range Walk(tree) {
			if !yield(Line(depth, e)) {
				return
			}
		}
	}
}

// Paths lists the path of every activity in the tree, depth first.
func Paths(tree *Tree) []string {
	var paths []string
	for _, e := range Walk(tree) {
		paths = append(paths, e.Path)
	}
	return paths
}
