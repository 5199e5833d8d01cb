// Package layout implements the binary split tree that maps a desktop's
// tiled clients onto screen rectangles.
package layout

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
)

// Placer receives the rectangles partition computes. The live
// implementation talks to the X server; tests record the calls.
type Placer interface {
	MoveResizeWindow(w xproto.Window, x, y, width, height uint16) error
	MapWindow(w xproto.Window) error
}

// Point is the target leaf for an insertion: a specific window, or Any for
// the leftmost leaf.
type Point struct {
	Window xproto.Window
	Any    bool
}

// AnyPoint targets the leftmost leaf.
func AnyPoint() Point {
	return Point{Any: true}
}

// WindowPoint targets the leaf holding w.
func WindowPoint(w xproto.Window) Point {
	return Point{Window: w}
}

// Node is one tree node. A node with children is an internal split; a node
// without is a leaf holding a window. Every internal node has exactly two
// children.
type Node struct {
	Window xproto.Window
	Left   *Node
	Right  *Node
	Insert config.Insert
}

// Root creates a single-leaf tree.
func Root(w xproto.Window) *Node {
	return &Node{Window: w}
}

func (n *Node) leaf() bool {
	return n.Left == nil
}

// Contains reports whether any leaf holds needle.
func (n *Node) Contains(needle xproto.Window) bool {
	if n.leaf() {
		return n.Window == needle
	}
	return n.Left.Contains(needle) || n.Right.Contains(needle)
}

// Collect returns every leaf window in left-first order.
func (n *Node) Collect() []xproto.Window {
	if n.leaf() {
		return []xproto.Window{n.Window}
	}
	return append(n.Left.Collect(), n.Right.Collect()...)
}

// Traverse invokes f on every leaf window, left first, aborting on the
// first failure.
func (n *Node) Traverse(f func(w xproto.Window) error) error {
	if n.leaf() {
		return f(n.Window)
	}
	if err := n.Left.Traverse(f); err != nil {
		return err
	}
	return n.Right.Traverse(f)
}

func (n *Node) find(point Point) *Node {
	if n.leaf() {
		if point.Any || n.Window == point.Window {
			return n
		}
		return nil
	}
	if target := n.Left.find(point); target != nil {
		return target
	}
	return n.Right.find(point)
}

// InsertAt splits the leaf located by point into an internal node holding
// both the former occupant and the new window. East and South place the
// new window as the right/bottom child, West and North as the left/top
// one. A point that matches nothing leaves the tree untouched.
func (n *Node) InsertAt(w xproto.Window, insert config.Insert, point Point) {
	target := n.find(point)
	if target == nil {
		return
	}
	old := &Node{Window: target.Window}
	leaf := &Node{Window: w}
	switch insert.Dir {
	case ipc.East, ipc.South:
		*target = Node{Left: old, Right: leaf, Insert: insert}
	default:
		*target = Node{Left: leaf, Right: old, Insert: insert}
	}
}

// Remove deletes the leaf holding needle, collapsing its parent into the
// surviving sibling. The return value bubbles the match up: true means the
// receiver itself is the matching leaf and the caller must drop it (the
// owning desktop handles the root case).
func (n *Node) Remove(needle xproto.Window) bool {
	if n.leaf() {
		return n.Window == needle
	}
	if n.Left.Remove(needle) {
		*n = *n.Right
	} else if n.Right.Remove(needle) {
		*n = *n.Left
	}
	return false
}

// MapInternal rewrites the nearest internal ancestor of the leaf holding
// needle with f. The return contract mirrors Remove.
func (n *Node) MapInternal(needle xproto.Window, f func(left, right *Node, insert config.Insert) *Node) bool {
	if n.leaf() {
		return n.Window == needle
	}
	if n.Left.MapInternal(needle, f) || n.Right.MapInternal(needle, f) {
		*n = *f(n.Left, n.Right, n.Insert)
	}
	return false
}

// Reverse mirrors the tree in place: children swap at every internal node.
// Insert directions are left untouched, so the split axes stay put.
func (n *Node) Reverse() {
	if n.leaf() {
		return
	}
	n.Left, n.Right = n.Right, n.Left
	n.Left.Reverse()
	n.Right.Reverse()
}

// Partition assigns area to the tree: leaves are shrunk by gaps on every
// side, moved, resized and mapped; internal nodes split their area by
// ratio along the insert direction. The second half is always the exact
// remainder, so the halves tile the parent without drift.
func (n *Node) Partition(p Placer, area Area, gaps uint8) error {
	if n.leaf() {
		g := uint16(gaps)
		if err := p.MoveResizeWindow(n.Window, area.X+g, area.Y+g, area.Width-g*2, area.Height-g*2); err != nil {
			return err
		}
		return p.MapWindow(n.Window)
	}

	ratio := n.Insert.Ratio
	if ratio > 100 {
		ratio = 100
	}
	factor := float64(ratio) / 100

	switch n.Insert.Dir {
	case ipc.North, ipc.South:
		top := uint16(float64(area.Height) * factor)
		if err := n.Left.Partition(p, Area{X: area.X, Y: area.Y, Width: area.Width, Height: top}, gaps); err != nil {
			return err
		}
		return n.Right.Partition(p, Area{X: area.X, Y: area.Y + top, Width: area.Width, Height: area.Height - top}, gaps)
	default:
		left := uint16(float64(area.Width) * factor)
		if err := n.Left.Partition(p, Area{X: area.X, Y: area.Y, Width: left, Height: area.Height}, gaps); err != nil {
			return err
		}
		return n.Right.Partition(p, Area{X: area.X + left, Y: area.Y, Width: area.Width - left, Height: area.Height}, gaps)
	}
}
