package adjacency

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// List is a directed adjacency structure over nodes 0..Len()-1.
// Connections are stored as one compressed bitmap per source node.
//
// The zero value is an empty list; construct with New to size it.
// Not safe for concurrent mutation.
type List struct {
	nodes []*roaring.Bitmap
}

// New creates a list with size nodes and no connections.
func New(size int) *List {
	nodes := make([]*roaring.Bitmap, size)
	for i := range nodes {
		nodes[i] = roaring.New()
	}
	return &List{nodes: nodes}
}

// Len returns the number of nodes.
func (l *List) Len() int {
	return len(l.nodes)
}

func (l *List) check(node int) error {
	if node < 0 || node >= len(l.nodes) {
		return fmt.Errorf("node %d out of range [0,%d)", node, len(l.nodes))
	}
	return nil
}

// SetConnection adds the directed connection from -> to.
// Adding an existing connection is a no-op.
func (l *List) SetConnection(from, to int) error {
	if err := l.check(from); err != nil {
		return err
	}
	if err := l.check(to); err != nil {
		return err
	}
	l.nodes[from].Add(uint32(to))
	return nil
}

// EraseConnection removes the directed connection from -> to.
// Removing a missing connection is a no-op.
func (l *List) EraseConnection(from, to int) error {
	if err := l.check(from); err != nil {
		return err
	}
	if err := l.check(to); err != nil {
		return err
	}
	l.nodes[from].Remove(uint32(to))
	return nil
}

// HasConnection reports whether the directed connection from -> to exists.
func (l *List) HasConnection(from, to int) (bool, error) {
	if err := l.check(from); err != nil {
		return false, err
	}
	if err := l.check(to); err != nil {
		return false, err
	}
	return l.nodes[from].Contains(uint32(to)), nil
}

// Neighbors returns the targets of node's outgoing connections in
// ascending order.
func (l *List) Neighbors(node int) ([]int, error) {
	if err := l.check(node); err != nil {
		return nil, err
	}

	bm := l.nodes[node]
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out, nil
}

// Degree returns the number of outgoing connections of node.
func (l *List) Degree(node int) (int, error) {
	if err := l.check(node); err != nil {
		return 0, err
	}
	return int(l.nodes[node].GetCardinality()), nil
}
