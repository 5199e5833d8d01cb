package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/proxin187/yaxiwm/internal/layout"
)

// dock is a panel-like window whose struts shrink the tiling area.
type dock struct {
	window xproto.Window
	strut  layout.Strut
}

// Screen is one physical output: an ordered list of desktops with a
// current index, plus the docks attached to it.
type Screen struct {
	desktops []*Desktop
	current  int
	area     layout.Area
	docks    []dock
}

// NewScreen creates a screen with count empty desktops sharing its area.
func NewScreen(area layout.Area, count int) *Screen {
	s := &Screen{area: area}
	for i := 0; i < count; i++ {
		s.desktops = append(s.desktops, NewDesktop(s.usable()))
	}
	return s
}

// Area is the screen-absolute rectangle, struts not deducted.
func (s *Screen) Area() layout.Area {
	return s.area
}

// usable is the area left after every dock's struts.
func (s *Screen) usable() layout.Area {
	var left, right, top, bottom uint32
	for _, d := range s.docks {
		if d.strut.Left > left {
			left = d.strut.Left
		}
		if d.strut.Right > right {
			right = d.strut.Right
		}
		if d.strut.Top > top {
			top = d.strut.Top
		}
		if d.strut.Bottom > bottom {
			bottom = d.strut.Bottom
		}
	}
	a := s.area
	if uint32(a.Width) <= left+right || uint32(a.Height) <= top+bottom {
		return a
	}
	return layout.Area{
		X:      a.X + uint16(left),
		Y:      a.Y + uint16(top),
		Width:  a.Width - uint16(left) - uint16(right),
		Height: a.Height - uint16(top) - uint16(bottom),
	}
}

func (s *Screen) updateAreas() {
	usable := s.usable()
	for _, d := range s.desktops {
		d.area = usable
	}
}

// Contains reports whether any desktop on the screen manages w.
func (s *Screen) Contains(w xproto.Window) bool {
	for _, d := range s.desktops {
		if d.Contains(w) {
			return true
		}
	}
	return false
}

// Current returns the visible desktop, or nil before any exist.
func (s *Screen) Current() *Desktop {
	if s.current < len(s.desktops) {
		return s.desktops[s.current]
	}
	return nil
}

// Resize adjusts the desktop count to n. Shrinking drains the dropped
// desktops and re-inserts every window they held, tiled, onto the last
// retained desktop: no client is lost.
func (s *Screen) Resize(n int) {
	if n < 1 {
		return
	}
	if n >= len(s.desktops) {
		usable := s.usable()
		for len(s.desktops) < n {
			s.desktops = append(s.desktops, NewDesktop(usable))
		}
		return
	}
	var excess []xproto.Window
	for _, d := range s.desktops[n:] {
		excess = append(excess, d.Windows()...)
	}
	s.desktops = s.desktops[:n]
	for _, w := range excess {
		s.desktops[n-1].Insert(w, config.DefaultInsert(), layout.AnyPoint(), ipc.Tiled)
	}
	if s.current >= n {
		s.current = n - 1
	}
}

// Insert places w on the current desktop.
func (s *Screen) Insert(w xproto.Window, insert config.Insert, point layout.Point, state ipc.State) {
	if d := s.Current(); d != nil {
		d.Insert(w, insert, point, state)
	}
}

// Remove deletes w from the current desktop and reports its old state.
func (s *Screen) Remove(w xproto.Window) ipc.State {
	if d := s.Current(); d != nil {
		return d.Remove(w)
	}
	return ipc.Tiled
}

// RemoveEverywhere deletes w from every desktop it appears on and reports
// whether anything changed.
func (s *Screen) RemoveEverywhere(w xproto.Window) bool {
	changed := false
	for _, d := range s.desktops {
		if d.Contains(w) {
			d.Remove(w)
			changed = true
		}
	}
	return changed
}

// MapInternal rewrites on the current desktop's tree.
func (s *Screen) MapInternal(needle xproto.Window, f func(left, right *layout.Node, insert config.Insert) *layout.Node) {
	if d := s.Current(); d != nil {
		d.MapInternal(needle, f)
	}
}

// AddDock registers a dock and its struts, shrinking the tiling area.
func (s *Screen) AddDock(w xproto.Window, strut layout.Strut) {
	s.docks = append(s.docks, dock{window: w, strut: strut})
	s.updateAreas()
}

// RemoveDock forgets a dock, restoring its reserved space.
func (s *Screen) RemoveDock(w xproto.Window) bool {
	for i, d := range s.docks {
		if d.window == w {
			s.docks = append(s.docks[:i], s.docks[i+1:]...)
			s.updateAreas()
			return true
		}
	}
	return false
}

// Tile lays out the current desktop and hides every other one. This is
// the single place that enforces one visible desktop per screen. The
// returned windows are the ones Hide unmapped.
func (s *Screen) Tile(g Gateway, padding config.Padding, gaps uint8) ([]xproto.Window, error) {
	var err error
	if d := s.Current(); d != nil {
		err = d.Tile(g, padding, gaps)
	}
	var hidden []xproto.Window
	for i, d := range s.desktops {
		if i != s.current {
			hidden = append(hidden, d.Hide(g)...)
		}
	}
	return hidden, err
}
