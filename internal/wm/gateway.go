package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/layout"
)

// Gateway is everything the manager asks of the display. The live
// implementation is internal/x11; tests script it.
type Gateway interface {
	// Window operations. Failures are recoverable: the window may have
	// vanished between the event and the action.
	MoveResizeWindow(w xproto.Window, x, y, width, height uint16) error
	MapWindow(w xproto.Window) error
	UnmapWindow(w xproto.Window) error
	RaiseWindow(w xproto.Window) error
	SetBorderColor(w xproto.Window, rgb uint32) error
	SetBorderWidth(w xproto.Window, width uint16) error
	SelectClientInput(w xproto.Window) error
	FocusWindow(w xproto.Window) error
	KillClient(w xproto.Window) error
	SendClientMessage(w xproto.Window, typ xproto.Atom, data [5]uint32) error

	// Queries.
	QueryPointer() (int16, int16, error)
	Geometry(w xproto.Window) (layout.Area, error)
	WindowTypes(w xproto.Window) ([]string, error)
	StrutPartial(w xproto.Window) (layout.Strut, error)
	WarpPointer(x, y uint16) error
	InternAtom(name string) (xproto.Atom, error)
	Screens() ([]layout.Area, error)
	WaitForEvent() (xgb.Event, error)

	// EWMH publishing.
	InstallWMCheck(name string) error
	PublishSupported() error
	SetNumberOfDesktops(n uint32) error
	SetCurrentDesktop(n uint32) error
	SetDesktopNames(names []string) error
	SetDesktopViewport(origins []layout.Area) error
}
