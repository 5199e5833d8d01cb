// Package x11 is the display gateway: everything the manager does to the
// X server goes through Conn, and the X event source reads from it.
package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/layout"
)

// Conn wraps the xgb connection together with the default screen and an
// atom cache. xgb serialises its own wire access, so the event source may
// block in WaitForEvent while the manager issues requests.
type Conn struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window

	mu    sync.Mutex
	atoms map[string]xproto.Atom
	names map[xproto.Atom]string
}

// Open connects to the display named by $DISPLAY.
func Open() (*Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	return &Conn{
		conn:   conn,
		screen: screen,
		root:   screen.Root,
		atoms:  make(map[string]xproto.Atom),
		names:  make(map[xproto.Atom]string),
	}, nil
}

// Close drops the connection.
func (c *Conn) Close() {
	c.conn.Close()
}

// Root returns the root window.
func (c *Conn) Root() xproto.Window {
	return c.root
}

// BecomeWM claims substructure redirection on the root window. An access
// error means another window manager is already running.
func (c *Conn) BecomeWM() error {
	mask := []uint32{
		xproto.EventMaskSubstructureNotify |
			xproto.EventMaskSubstructureRedirect |
			xproto.EventMaskEnterWindow |
			xproto.EventMaskFocusChange,
	}
	if err := xproto.ChangeWindowAttributesChecked(c.conn, c.root, xproto.CwEventMask, mask).Check(); err != nil {
		return fmt.Errorf("x11: could not become the window manager, is another one running? %w", err)
	}
	return nil
}

// InternAtom resolves an atom by name through a cache.
func (c *Conn) InternAtom(name string) (xproto.Atom, error) {
	c.mu.Lock()
	if atom, ok := c.atoms[name]; ok {
		c.mu.Unlock()
		return atom, nil
	}
	c.mu.Unlock()

	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: intern %s: %w", name, err)
	}

	c.mu.Lock()
	c.atoms[name] = reply.Atom
	c.names[reply.Atom] = name
	c.mu.Unlock()
	return reply.Atom, nil
}

func (c *Conn) atomName(atom xproto.Atom) (string, error) {
	c.mu.Lock()
	if name, ok := c.names[atom]; ok {
		c.mu.Unlock()
		return name, nil
	}
	c.mu.Unlock()

	reply, err := xproto.GetAtomName(c.conn, atom).Reply()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.names[atom] = reply.Name
	c.atoms[reply.Name] = atom
	c.mu.Unlock()
	return reply.Name, nil
}

// Screens enumerates the xinerama heads. Failure here is fatal: a manager
// without screens has nothing to arrange.
func (c *Conn) Screens() ([]layout.Area, error) {
	if err := xinerama.Init(c.conn); err != nil {
		return nil, fmt.Errorf("x11: xinerama: %w", err)
	}
	reply, err := xinerama.QueryScreens(c.conn).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: query screens: %w", err)
	}
	areas := make([]layout.Area, 0, len(reply.ScreenInfo))
	for _, info := range reply.ScreenInfo {
		areas = append(areas, layout.Area{
			X:      uint16(info.XOrg),
			Y:      uint16(info.YOrg),
			Width:  info.Width,
			Height: info.Height,
		})
	}
	return areas, nil
}

// WaitForEvent blocks until the next X event. A nil event with a nil
// error means the connection is gone.
func (c *Conn) WaitForEvent() (xgb.Event, error) {
	ev, err := c.conn.WaitForEvent()
	if ev == nil && err == nil {
		return nil, fmt.Errorf("x11: connection closed")
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// MoveResizeWindow reconfigures a window's geometry in one request.
func (c *Conn) MoveResizeWindow(w xproto.Window, x, y, width, height uint16) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(x), uint32(y), uint32(width), uint32(height)}
	return xproto.ConfigureWindowChecked(c.conn, w, mask, values).Check()
}

// MapWindow shows a window.
func (c *Conn) MapWindow(w xproto.Window) error {
	return xproto.MapWindowChecked(c.conn, w).Check()
}

// UnmapWindow hides a window.
func (c *Conn) UnmapWindow(w xproto.Window) error {
	return xproto.UnmapWindowChecked(c.conn, w).Check()
}

// RaiseWindow restacks a window above its siblings.
func (c *Conn) RaiseWindow(w xproto.Window) error {
	mask := uint16(xproto.ConfigWindowStackMode)
	return xproto.ConfigureWindowChecked(c.conn, w, mask, []uint32{xproto.StackModeAbove}).Check()
}

// SetBorderColor paints the window border.
func (c *Conn) SetBorderColor(w xproto.Window, rgb uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.conn, w, xproto.CwBorderPixel, []uint32{rgb}).Check()
}

// SetBorderWidth sets the border width in pixels.
func (c *Conn) SetBorderWidth(w xproto.Window, width uint16) error {
	mask := uint16(xproto.ConfigWindowBorderWidth)
	return xproto.ConfigureWindowChecked(c.conn, w, mask, []uint32{uint32(width)}).Check()
}

// SelectClientInput subscribes to the events the manager dispatches on for
// a managed client.
func (c *Conn) SelectClientInput(w xproto.Window) error {
	mask := []uint32{
		xproto.EventMaskSubstructureNotify |
			xproto.EventMaskSubstructureRedirect |
			xproto.EventMaskEnterWindow |
			xproto.EventMaskFocusChange,
	}
	return xproto.ChangeWindowAttributesChecked(c.conn, w, xproto.CwEventMask, mask).Check()
}

// FocusWindow hands the input focus to a window, reverting to the parent
// if the window goes away.
func (c *Conn) FocusWindow(w xproto.Window) error {
	return xproto.SetInputFocusChecked(c.conn, xproto.InputFocusParent, w, xproto.TimeCurrentTime).Check()
}

// WarpPointer moves the pointer to root-absolute coordinates.
func (c *Conn) WarpPointer(x, y uint16) error {
	return xproto.WarpPointerChecked(c.conn, xproto.WindowNone, c.root, 0, 0, 0, 0, int16(x), int16(y)).Check()
}

// QueryPointer returns the pointer's root-absolute position.
func (c *Conn) QueryPointer() (int16, int16, error) {
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("x11: query pointer: %w", err)
	}
	return reply.RootX, reply.RootY, nil
}

// Geometry returns a window's current geometry.
func (c *Conn) Geometry(w xproto.Window) (layout.Area, error) {
	reply, err := xproto.GetGeometry(c.conn, xproto.Drawable(w)).Reply()
	if err != nil {
		return layout.Area{}, fmt.Errorf("x11: geometry of %d: %w", w, err)
	}
	return layout.Area{
		X:      uint16(reply.X),
		Y:      uint16(reply.Y),
		Width:  reply.Width,
		Height: reply.Height,
	}, nil
}

// KillClient forcibly disconnects the client owning w.
func (c *Conn) KillClient(w xproto.Window) error {
	return xproto.KillClientChecked(c.conn, uint32(w)).Check()
}

// SendClientMessage delivers a 32-bit-format client message to w.
func (c *Conn) SendClientMessage(w xproto.Window, typ xproto.Atom, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	return xproto.SendEventChecked(c.conn, false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}
