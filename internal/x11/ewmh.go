package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/layout"
)

// wmName is the value published through _NET_WM_NAME.
const wmName = "yaxiwm"

// supportedAtoms is the hint set advertised in _NET_SUPPORTED.
var supportedAtoms = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"_NET_ACTIVE_WINDOW",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_MENU",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_NORMAL",
}

func le32(values []uint32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		data[i*4] = byte(v)
		data[i*4+1] = byte(v >> 8)
		data[i*4+2] = byte(v >> 16)
		data[i*4+3] = byte(v >> 24)
	}
	return data
}

func (c *Conn) changeProperty32(w xproto.Window, prop, typ string, values []uint32) error {
	propAtom, err := c.InternAtom(prop)
	if err != nil {
		return err
	}
	typAtom, err := c.InternAtom(typ)
	if err != nil {
		return err
	}
	return xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeReplace, w, propAtom, typAtom, 32,
		uint32(len(values)), le32(values),
	).Check()
}

func (c *Conn) property32(w xproto.Window, prop string) ([]uint32, error) {
	propAtom, err := c.InternAtom(prop)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(
		c.conn, false, w, propAtom, xproto.GetPropertyTypeAny, 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return nil, err
	}
	values := make([]uint32, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		values = append(values, uint32(reply.Value[i])|
			uint32(reply.Value[i+1])<<8|
			uint32(reply.Value[i+2])<<16|
			uint32(reply.Value[i+3])<<24)
	}
	return values, nil
}

// InstallWMCheck creates the supporting-check window EWMH requires and
// points _NET_SUPPORTING_WM_CHECK at it from both the root and the child.
func (c *Conn) InstallWMCheck(name string) error {
	if name == "" {
		name = wmName
	}
	check, err := xproto.NewWindowId(c.conn)
	if err != nil {
		return fmt.Errorf("x11: allocate check window: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c.conn, 0, check, c.root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, c.screen.RootVisual, 0, nil,
	).Check()
	if err != nil {
		return fmt.Errorf("x11: create check window: %w", err)
	}

	for _, w := range []xproto.Window{c.root, check} {
		if err := c.changeProperty32(w, "_NET_SUPPORTING_WM_CHECK", "WINDOW", []uint32{uint32(check)}); err != nil {
			return err
		}
	}

	nameAtom, err := c.InternAtom("_NET_WM_NAME")
	if err != nil {
		return err
	}
	utf8Atom, err := c.InternAtom("UTF8_STRING")
	if err != nil {
		return err
	}
	for _, w := range []xproto.Window{c.root, check} {
		err = xproto.ChangePropertyChecked(
			c.conn, xproto.PropModeReplace, w, nameAtom, utf8Atom, 8,
			uint32(len(name)), []byte(name),
		).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// PublishSupported advertises the hints the manager implements.
func (c *Conn) PublishSupported() error {
	atoms := make([]uint32, 0, len(supportedAtoms))
	for _, name := range supportedAtoms {
		atom, err := c.InternAtom(name)
		if err != nil {
			return err
		}
		atoms = append(atoms, uint32(atom))
	}
	return c.changeProperty32(c.root, "_NET_SUPPORTED", "ATOM", atoms)
}

// SetNumberOfDesktops publishes _NET_NUMBER_OF_DESKTOPS.
func (c *Conn) SetNumberOfDesktops(n uint32) error {
	return c.changeProperty32(c.root, "_NET_NUMBER_OF_DESKTOPS", "CARDINAL", []uint32{n})
}

// SetCurrentDesktop publishes _NET_CURRENT_DESKTOP.
func (c *Conn) SetCurrentDesktop(n uint32) error {
	return c.changeProperty32(c.root, "_NET_CURRENT_DESKTOP", "CARDINAL", []uint32{n})
}

// SetDesktopNames publishes _NET_DESKTOP_NAMES as a NUL-joined UTF8 list.
func (c *Conn) SetDesktopNames(names []string) error {
	propAtom, err := c.InternAtom("_NET_DESKTOP_NAMES")
	if err != nil {
		return err
	}
	utf8Atom, err := c.InternAtom("UTF8_STRING")
	if err != nil {
		return err
	}
	var data []byte
	for _, name := range names {
		data = append(data, name...)
		data = append(data, 0)
	}
	return xproto.ChangePropertyChecked(
		c.conn, xproto.PropModeReplace, c.root, propAtom, utf8Atom, 8,
		uint32(len(data)), data,
	).Check()
}

// SetDesktopViewport publishes one (x, y) origin pair per desktop.
func (c *Conn) SetDesktopViewport(origins []layout.Area) error {
	values := make([]uint32, 0, len(origins)*2)
	for _, origin := range origins {
		values = append(values, uint32(origin.X), uint32(origin.Y))
	}
	return c.changeProperty32(c.root, "_NET_DESKTOP_VIEWPORT", "CARDINAL", values)
}

// WindowTypes returns the names of a window's _NET_WM_WINDOW_TYPE atoms.
// A window without the property has no types, which callers treat as a
// normal (tiled) window.
func (c *Conn) WindowTypes(w xproto.Window) ([]string, error) {
	atoms, err := c.property32(w, "_NET_WM_WINDOW_TYPE")
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(atoms))
	for _, atom := range atoms {
		name, err := c.atomName(xproto.Atom(atom))
		if err != nil {
			continue
		}
		types = append(types, name)
	}
	return types, nil
}

// StrutPartial reads the edge space a dock reserves, preferring
// _NET_WM_STRUT_PARTIAL and falling back to the older _NET_WM_STRUT. A
// window without either reserves nothing.
func (c *Conn) StrutPartial(w xproto.Window) (layout.Strut, error) {
	values, err := c.property32(w, "_NET_WM_STRUT_PARTIAL")
	if err != nil || len(values) < 4 {
		values, err = c.property32(w, "_NET_WM_STRUT")
		if err != nil {
			return layout.Strut{}, err
		}
	}
	if len(values) < 4 {
		return layout.Strut{}, nil
	}
	return layout.Strut{
		Left:   values[0],
		Right:  values[1],
		Top:    values[2],
		Bottom: values[3],
	}, nil
}
