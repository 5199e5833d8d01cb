package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/proxin187/yaxiwm/internal/layout"
	"github.com/proxin187/yaxiwm/internal/logger"
)

// Desktop is one workspace: a tiled tree plus an ordered list of floating
// clients, bound to a screen-absolute area. Dock windows are tracked at
// the screen level, never here.
type Desktop struct {
	tree     *layout.Node
	floating []xproto.Window
	area     layout.Area
}

// NewDesktop creates an empty desktop covering area.
func NewDesktop(area layout.Area) *Desktop {
	return &Desktop{area: area}
}

// Contains reports whether the desktop manages w, tiled or floating.
func (d *Desktop) Contains(w xproto.Window) bool {
	if d.tree != nil && d.tree.Contains(w) {
		return true
	}
	for _, f := range d.floating {
		if f == w {
			return true
		}
	}
	return false
}

// Insert places w according to its state: tiled windows graft onto the
// tree, floating ones append to the list, docks are left unmanaged.
func (d *Desktop) Insert(w xproto.Window, insert config.Insert, point layout.Point, state ipc.State) {
	switch state {
	case ipc.Tiled:
		if d.tree == nil {
			d.tree = layout.Root(w)
			return
		}
		d.tree.InsertAt(w, insert, point)
	case ipc.Float:
		d.floating = append(d.floating, w)
	}
}

// Remove deletes w and reports the state it occupied, so callers can
// restore it after a desktop move. A root-leaf match empties the tree.
func (d *Desktop) Remove(w xproto.Window) ipc.State {
	if d.tree != nil && d.tree.Remove(w) {
		d.tree = nil
	}
	for i, f := range d.floating {
		if f == w {
			d.floating = append(d.floating[:i], d.floating[i+1:]...)
			return ipc.Float
		}
	}
	return ipc.Tiled
}

// MapInternal rewrites the nearest internal ancestor of the leaf holding
// needle.
func (d *Desktop) MapInternal(needle xproto.Window, f func(left, right *layout.Node, insert config.Insert) *layout.Node) {
	if d.tree != nil {
		d.tree.MapInternal(needle, f)
	}
}

// Windows returns every window the desktop manages, tiled first.
func (d *Desktop) Windows() []xproto.Window {
	var windows []xproto.Window
	if d.tree != nil {
		windows = d.tree.Collect()
	}
	return append(windows, d.floating...)
}

// Hide unmaps everything on the desktop and returns the windows that were
// actually unmapped, so the manager can discount the resulting
// UnmapNotify echoes. Display failures are logged and skipped.
func (d *Desktop) Hide(g Gateway) []xproto.Window {
	log := logger.WithComponent("wm")
	var hidden []xproto.Window
	unmap := func(w xproto.Window) error {
		if err := g.UnmapWindow(w); err != nil {
			log.Debug().Err(err).Uint32("window", uint32(w)).Msg("unmap failed")
			return nil
		}
		hidden = append(hidden, w)
		return nil
	}
	if d.tree != nil {
		d.tree.Traverse(unmap)
	}
	for _, f := range d.floating {
		unmap(f)
	}
	return hidden
}

// Tile lays the tree into the desktop's area shrunk by padding, then maps
// and raises the floating windows so they render above the tiles.
func (d *Desktop) Tile(g Gateway, padding config.Padding, gaps uint8) error {
	if d.tree != nil {
		inner := layout.Area{
			X:      d.area.X + padding.Left,
			Y:      d.area.Y + padding.Top,
			Width:  d.area.Width - padding.Left - padding.Right,
			Height: d.area.Height - padding.Top - padding.Bottom,
		}
		if err := d.tree.Partition(g, inner, gaps); err != nil {
			return err
		}
	}
	log := logger.WithComponent("wm")
	for _, f := range d.floating {
		if err := g.MapWindow(f); err != nil {
			log.Debug().Err(err).Uint32("window", uint32(f)).Msg("map failed")
			continue
		}
		if err := g.RaiseWindow(f); err != nil {
			log.Debug().Err(err).Uint32("window", uint32(f)).Msg("raise failed")
		}
	}
	return nil
}
