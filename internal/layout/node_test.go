package layout

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
)

type step struct {
	window xproto.Window
	insert config.Insert
	point  Point
}

// build grows a tree from a root window and a sequence of insertions.
func build(root xproto.Window, steps ...step) *Node {
	n := Root(root)
	for _, s := range steps {
		n.InsertAt(s.window, s.insert, s.point)
	}
	return n
}

func east(ratio int8) config.Insert  { return config.Insert{Dir: ipc.East, Ratio: ratio} }
func west(ratio int8) config.Insert  { return config.Insert{Dir: ipc.West, Ratio: ratio} }
func south(ratio int8) config.Insert { return config.Insert{Dir: ipc.South, Ratio: ratio} }
func north(ratio int8) config.Insert { return config.Insert{Dir: ipc.North, Ratio: ratio} }

func clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Window: n.Window,
		Left:   clone(n.Left),
		Right:  clone(n.Right),
		Insert: n.Insert,
	}
}

// equal is structural equality including Insert values on every internal
// node.
func equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.leaf() != b.leaf() {
		return false
	}
	if a.leaf() {
		return a.Window == b.Window
	}
	return a.Insert == b.Insert && equal(a.Left, b.Left) && equal(a.Right, b.Right)
}

// trees is a shared set of shapes the properties run against.
func trees() map[string]*Node {
	return map[string]*Node{
		"single": build(0x100),
		"pair":   build(0x100, step{0x101, east(50), AnyPoint()}),
		"deep": build(0x100,
			step{0x101, east(50), AnyPoint()},
			step{0x102, south(30), WindowPoint(0x101)},
			step{0x103, west(70), WindowPoint(0x100)},
			step{0x104, north(40), WindowPoint(0x102)},
		),
		"lopsided": build(0x100,
			step{0x101, east(90), AnyPoint()},
			step{0x102, east(90), WindowPoint(0x101)},
			step{0x103, east(90), WindowPoint(0x102)},
		),
	}
}

func TestInsertContains(t *testing.T) {
	for name, tree := range trees() {
		t.Run(name, func(t *testing.T) {
			tree.InsertAt(0x999, east(50), AnyPoint())
			assert.True(t, tree.Contains(0x999))
		})
	}
}

func TestInsertThenRemoveIdentity(t *testing.T) {
	for name, tree := range trees() {
		t.Run(name, func(t *testing.T) {
			before := clone(tree)
			for _, point := range []Point{AnyPoint(), WindowPoint(0x100)} {
				tree.InsertAt(0x999, north(25), point)
				require.True(t, tree.Contains(0x999))
				tree.Remove(0x999)
				assert.True(t, equal(before, tree))
			}
		})
	}
}

func TestRemoveCollapsesIntoSibling(t *testing.T) {
	tree := build(0x100,
		step{0x101, east(50), AnyPoint()},
		step{0x102, south(30), WindowPoint(0x101)},
	)
	// root = (0x100 | (0x101 / 0x102)); removing 0x102 must leave the
	// plain sibling, not an internal node with one child.
	sibling := clone(tree.Right.Left)
	tree.Remove(0x102)
	assert.True(t, equal(tree.Right, sibling))

	tree = build(0x100, step{0x101, east(50), AnyPoint()})
	tree.Remove(0x100)
	assert.True(t, tree.leaf())
	assert.Equal(t, xproto.Window(0x101), tree.Window)
}

func TestRemoveRootLeafBubblesUp(t *testing.T) {
	tree := Root(0x100)
	assert.True(t, tree.Remove(0x100), "root leaf match must bubble up to the owner")
	assert.False(t, tree.Remove(0x999))
}

func TestReverseIsInvolution(t *testing.T) {
	for name, tree := range trees() {
		t.Run(name, func(t *testing.T) {
			before := clone(tree)
			tree.Reverse()
			tree.Reverse()
			assert.True(t, equal(before, tree))
		})
	}
}

func TestReverseKeepsInsertDirections(t *testing.T) {
	tree := build(0x100, step{0x101, east(70), AnyPoint()})
	tree.Reverse()
	assert.Equal(t, xproto.Window(0x101), tree.Left.Window)
	assert.Equal(t, xproto.Window(0x100), tree.Right.Window)
	assert.Equal(t, ipc.East, tree.Insert.Dir)
	assert.Equal(t, int8(70), tree.Insert.Ratio)
}

// recorder collects the rectangles partition emits.
type recorder struct {
	rects map[xproto.Window]Area
	order []xproto.Window
}

func newRecorder() *recorder {
	return &recorder{rects: make(map[xproto.Window]Area)}
}

func (r *recorder) MoveResizeWindow(w xproto.Window, x, y, width, height uint16) error {
	r.rects[w] = Area{X: x, Y: y, Width: width, Height: height}
	r.order = append(r.order, w)
	return nil
}

func (r *recorder) MapWindow(w xproto.Window) error {
	return nil
}

func overlaps(a, b Area) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func TestPartitionConservation(t *testing.T) {
	total := Area{X: 0, Y: 0, Width: 1920, Height: 1080}
	for name, tree := range trees() {
		t.Run(name, func(t *testing.T) {
			rec := newRecorder()
			require.NoError(t, tree.Partition(rec, total, 0))

			var sum uint64
			for _, rect := range rec.rects {
				sum += uint64(rect.Width) * uint64(rect.Height)
			}
			assert.Equal(t, uint64(total.Width)*uint64(total.Height), sum,
				"leaf rectangles must cover the area exactly")

			for i, w := range rec.order {
				for _, v := range rec.order[i+1:] {
					assert.False(t, overlaps(rec.rects[w], rec.rects[v]),
						"windows %#x and %#x overlap", w, v)
				}
			}
		})
	}
}

func TestPartitionSplitArithmetic(t *testing.T) {
	// The right child always gets total - total*factor so the halves sum
	// exactly even when the product truncates.
	tree := build(0x100, step{0x101, east(70), AnyPoint()})
	rec := newRecorder()
	require.NoError(t, tree.Partition(rec, Area{Width: 1920, Height: 1080}, 0))
	assert.Equal(t, Area{X: 0, Y: 0, Width: 1344, Height: 1080}, rec.rects[0x100])
	assert.Equal(t, Area{X: 1344, Y: 0, Width: 576, Height: 1080}, rec.rects[0x101])

	tree = build(0x100, step{0x101, south(33), AnyPoint()})
	rec = newRecorder()
	require.NoError(t, tree.Partition(rec, Area{Width: 1000, Height: 999}, 0))
	assert.Equal(t, Area{X: 0, Y: 0, Width: 1000, Height: 329}, rec.rects[0x100])
	assert.Equal(t, Area{X: 0, Y: 329, Width: 1000, Height: 670}, rec.rects[0x101])
}

func TestPartitionGaps(t *testing.T) {
	tree := Root(0x100)
	rec := newRecorder()
	require.NoError(t, tree.Partition(rec, Area{Width: 1920, Height: 1080}, 8))
	assert.Equal(t, Area{X: 8, Y: 8, Width: 1904, Height: 1064}, rec.rects[0x100])
}

func TestFindAnyIsLeftmost(t *testing.T) {
	tree := build(0x100,
		step{0x101, east(50), AnyPoint()},
		step{0x102, west(50), AnyPoint()}, // 0x102 becomes the leftmost leaf
	)
	require.Equal(t, xproto.Window(0x102), tree.Collect()[0])

	// Inserting at Any must split the leftmost leaf.
	tree.InsertAt(0x103, east(50), AnyPoint())
	collected := tree.Collect()
	assert.Equal(t, xproto.Window(0x102), collected[0])
	assert.Equal(t, xproto.Window(0x103), collected[1])
}

func TestTraverseAbortsOnFailure(t *testing.T) {
	tree := build(0x100,
		step{0x101, east(50), AnyPoint()},
		step{0x102, east(50), WindowPoint(0x101)},
	)
	var visited []xproto.Window
	err := tree.Traverse(func(w xproto.Window) error {
		visited = append(visited, w)
		if w == 0x101 {
			return assert.AnError
		}
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, []xproto.Window{0x100, 0x101}, visited)
}

func TestCollectOrder(t *testing.T) {
	tree := build(0x100,
		step{0x101, east(50), AnyPoint()},
		step{0x102, south(50), WindowPoint(0x101)},
	)
	assert.Equal(t, []xproto.Window{0x100, 0x101, 0x102}, tree.Collect())
}
