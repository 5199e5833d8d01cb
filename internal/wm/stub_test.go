package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/proxin187/yaxiwm/internal/layout"
)

// stubGateway scripts the display: it records every call the manager
// makes and answers queries from canned data.
type stubGateway struct {
	rects    map[xproto.Window]layout.Area
	moves    int
	mapped   map[xproto.Window]int
	unmapped map[xproto.Window]int
	raised   []xproto.Window
	borders  map[xproto.Window]uint32
	widths   map[xproto.Window]uint16
	selected []xproto.Window
	focused  []xproto.Window
	killed   []xproto.Window
	messages []clientMessage
	warped   [][2]uint16

	pointerX int16
	pointerY int16
	types    map[xproto.Window][]string
	struts   map[xproto.Window]layout.Strut
	areas    []layout.Area

	currentDesktop []uint32
	desktopCount   []uint32
	desktopNames   [][]string
	viewports      [][]layout.Area
	checkInstalled bool
	supported      bool
}

type clientMessage struct {
	window xproto.Window
	typ    xproto.Atom
	data   [5]uint32
}

func newStubGateway(areas ...layout.Area) *stubGateway {
	return &stubGateway{
		rects:    make(map[xproto.Window]layout.Area),
		mapped:   make(map[xproto.Window]int),
		unmapped: make(map[xproto.Window]int),
		borders:  make(map[xproto.Window]uint32),
		widths:   make(map[xproto.Window]uint16),
		types:    make(map[xproto.Window][]string),
		struts:   make(map[xproto.Window]layout.Strut),
		areas:    areas,
		pointerX: 500,
		pointerY: 500,
	}
}

func (g *stubGateway) MoveResizeWindow(w xproto.Window, x, y, width, height uint16) error {
	g.rects[w] = layout.Area{X: x, Y: y, Width: width, Height: height}
	g.moves++
	return nil
}

func (g *stubGateway) MapWindow(w xproto.Window) error {
	g.mapped[w]++
	return nil
}

func (g *stubGateway) UnmapWindow(w xproto.Window) error {
	g.unmapped[w]++
	return nil
}

func (g *stubGateway) RaiseWindow(w xproto.Window) error {
	g.raised = append(g.raised, w)
	return nil
}

func (g *stubGateway) SetBorderColor(w xproto.Window, rgb uint32) error {
	g.borders[w] = rgb
	return nil
}

func (g *stubGateway) SetBorderWidth(w xproto.Window, width uint16) error {
	g.widths[w] = width
	return nil
}

func (g *stubGateway) SelectClientInput(w xproto.Window) error {
	g.selected = append(g.selected, w)
	return nil
}

func (g *stubGateway) FocusWindow(w xproto.Window) error {
	g.focused = append(g.focused, w)
	return nil
}

func (g *stubGateway) KillClient(w xproto.Window) error {
	g.killed = append(g.killed, w)
	return nil
}

func (g *stubGateway) SendClientMessage(w xproto.Window, typ xproto.Atom, data [5]uint32) error {
	g.messages = append(g.messages, clientMessage{window: w, typ: typ, data: data})
	return nil
}

func (g *stubGateway) QueryPointer() (int16, int16, error) {
	return g.pointerX, g.pointerY, nil
}

func (g *stubGateway) Geometry(w xproto.Window) (layout.Area, error) {
	return g.rects[w], nil
}

func (g *stubGateway) WindowTypes(w xproto.Window) ([]string, error) {
	return g.types[w], nil
}

func (g *stubGateway) StrutPartial(w xproto.Window) (layout.Strut, error) {
	return g.struts[w], nil
}

func (g *stubGateway) WarpPointer(x, y uint16) error {
	g.warped = append(g.warped, [2]uint16{x, y})
	return nil
}

func (g *stubGateway) InternAtom(name string) (xproto.Atom, error) {
	switch name {
	case "WM_PROTOCOLS":
		return 0x10, nil
	case "WM_DELETE_WINDOW":
		return 0x11, nil
	}
	return 0x42, nil
}

func (g *stubGateway) Screens() ([]layout.Area, error) {
	return g.areas, nil
}

func (g *stubGateway) WaitForEvent() (xgb.Event, error) {
	select {}
}

func (g *stubGateway) InstallWMCheck(name string) error {
	g.checkInstalled = true
	return nil
}

func (g *stubGateway) PublishSupported() error {
	g.supported = true
	return nil
}

func (g *stubGateway) SetNumberOfDesktops(n uint32) error {
	g.desktopCount = append(g.desktopCount, n)
	return nil
}

func (g *stubGateway) SetCurrentDesktop(n uint32) error {
	g.currentDesktop = append(g.currentDesktop, n)
	return nil
}

func (g *stubGateway) SetDesktopNames(names []string) error {
	g.desktopNames = append(g.desktopNames, names)
	return nil
}

func (g *stubGateway) SetDesktopViewport(origins []layout.Area) error {
	g.viewports = append(g.viewports, origins)
	return nil
}

var _ Gateway = (*stubGateway)(nil)
