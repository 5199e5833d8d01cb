package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/event"
	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/proxin187/yaxiwm/internal/layout"
	"github.com/proxin187/yaxiwm/internal/logger"
	"github.com/proxin187/yaxiwm/internal/server"
	"github.com/proxin187/yaxiwm/internal/startup"
)

type atoms struct {
	wmProtocols xproto.Atom
	wmDelete    xproto.Atom
}

// WindowManager owns every screen, the configuration and the current
// focus. It is the queue's sole consumer: each message is applied fully
// before the next one begins.
type WindowManager struct {
	gw      Gateway
	events  *event.Queue[event.Message]
	screens []*Screen
	focus   xproto.Window
	config  *config.Config
	atoms   atoms

	// Unmaps the manager issued itself, counted so their UnmapNotify
	// echoes are skipped instead of unmanaging hidden windows.
	ignoreUnmaps map[xproto.Window]int

	shouldClose bool
	log         zerolog.Logger
}

// New wires a manager to its display gateway and configuration.
func New(gw Gateway, cfg *config.Config) *WindowManager {
	return &WindowManager{
		gw:           gw,
		events:       event.NewQueue[event.Message](),
		config:       cfg,
		ignoreUnmaps: make(map[xproto.Window]int),
		log:          logger.WithComponent("wm"),
	}
}

// Events exposes the queue for producers.
func (m *WindowManager) Events() *event.Queue[event.Message] {
	return m.events
}

// Setup enumerates the screens, caches the ICCCM atoms and publishes the
// EWMH hints. Failures here are fatal.
func (m *WindowManager) Setup() error {
	areas, err := m.gw.Screens()
	if err != nil {
		return err
	}
	for _, area := range areas {
		m.screens = append(m.screens, NewScreen(area, len(m.config.DesktopNames)))
	}

	if m.atoms.wmProtocols, err = m.gw.InternAtom("WM_PROTOCOLS"); err != nil {
		return err
	}
	if m.atoms.wmDelete, err = m.gw.InternAtom("WM_DELETE_WINDOW"); err != nil {
		return err
	}

	if err := m.gw.InstallWMCheck("yaxiwm"); err != nil {
		return fmt.Errorf("wm: install check window: %w", err)
	}
	if err := m.gw.PublishSupported(); err != nil {
		return fmt.Errorf("wm: publish supported: %w", err)
	}
	m.publishDesktopHints()
	return nil
}

// Run spawns the producers, fires the autostart script and consumes
// messages until an Exit command lands.
func (m *WindowManager) Run(socketPath, autostartPath string) error {
	srv, err := server.New(socketPath, m.events)
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Listen(); err != nil {
			m.log.Error().Err(err).Msg("ipc server stopped")
		}
	}()

	go m.listenX()

	if err := startup.Run(autostartPath); err != nil {
		m.log.Warn().Err(err).Msg("autostart failed")
	}

	for !m.shouldClose {
		m.Dispatch(m.events.Wait())
	}
	return srv.Close()
}

// listenX is the X event source: a blocking reader pushing into the
// queue. It terminates on read errors; the consumer keeps draining.
func (m *WindowManager) listenX() {
	log := logger.WithComponent("x11-events")
	for {
		ev, err := m.gw.WaitForEvent()
		if err != nil {
			log.Error().Err(err).Msg("event source stopped")
			return
		}
		m.events.Push(event.Message{X: ev})
	}
}

// Dispatch applies one message. Per-message errors never escape: they are
// logged and the loop moves on.
func (m *WindowManager) Dispatch(msg event.Message) {
	switch {
	case msg.Cmd != nil:
		m.handleCommand(msg.Cmd)
	case msg.X != nil:
		m.handleXEvent(msg.X)
	}
}

func (m *WindowManager) handleXEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		m.handleMapRequest(e.Window)
	case xproto.UnmapNotifyEvent:
		m.handleUnmapNotify(e.Window)
	case xproto.EnterNotifyEvent:
		m.handleEnterNotify(e.Event)
	case xproto.FocusInEvent:
		m.handleFocusIn(e.Event)
	}
}

func (m *WindowManager) handleMapRequest(w xproto.Window) {
	if err := m.gw.SelectClientInput(w); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("select input failed")
	}
	if err := m.gw.SetBorderColor(w, m.config.BorderNormal); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("border colour failed")
	}
	if err := m.gw.SetBorderWidth(w, m.config.BorderWidth); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("border width failed")
	}

	types, err := m.gw.WindowTypes(w)
	if err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("window types unreadable")
	}
	state := ipc.StateFromTypes(types)
	if state == ipc.Dock {
		m.manageDock(w)
		return
	}

	point := layout.AnyPoint()
	if m.focus != 0 {
		point = layout.WindowPoint(m.focus)
	}
	m.onFocusedScreen(func(s *Screen) {
		s.Insert(w, m.config.Insert, point, state)
		m.tileScreen(s)
	})
}

// manageDock registers a dock on the screen under it, reserving its
// struts. Docks never enter the tree.
func (m *WindowManager) manageDock(w xproto.Window) {
	strut, err := m.gw.StrutPartial(w)
	if err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("struts unreadable")
	}

	target := m.screenAt(w)
	if target == nil {
		return
	}
	target.AddDock(w, strut)
	if err := m.gw.MapWindow(w); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("map dock failed")
	}
	m.tileScreen(target)
}

// screenAt locates the screen containing a window's origin, falling back
// to the first screen.
func (m *WindowManager) screenAt(w xproto.Window) *Screen {
	if len(m.screens) == 0 {
		return nil
	}
	geo, err := m.gw.Geometry(w)
	if err == nil {
		for _, s := range m.screens {
			if s.Area().Contains(geo.X, geo.Y) {
				return s
			}
		}
	}
	return m.screens[0]
}

func (m *WindowManager) handleUnmapNotify(w xproto.Window) {
	if n := m.ignoreUnmaps[w]; n > 0 {
		if n == 1 {
			delete(m.ignoreUnmaps, w)
		} else {
			m.ignoreUnmaps[w] = n - 1
		}
		return
	}

	for _, s := range m.screens {
		changed := s.RemoveEverywhere(w)
		if s.RemoveDock(w) {
			changed = true
		}
		if changed {
			m.tileScreen(s)
		}
	}
	if m.focus == w {
		m.focus = 0
	}
}

func (m *WindowManager) handleEnterNotify(w xproto.Window) {
	if !m.managed(w) || !m.config.FocusFollows {
		return
	}
	if err := m.gw.FocusWindow(w); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("focus failed")
	}
}

func (m *WindowManager) handleFocusIn(w xproto.Window) {
	if !m.managed(w) {
		return
	}
	if err := m.gw.SetBorderColor(w, m.config.BorderFocused); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("border colour failed")
	}
	if err := m.gw.RaiseWindow(w); err != nil {
		m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("raise failed")
	}

	prev := m.focus
	m.focus = w
	if prev != 0 && prev != w {
		if err := m.gw.SetBorderColor(prev, m.config.BorderNormal); err != nil {
			m.log.Debug().Err(err).Uint32("window", uint32(prev)).Msg("border colour failed")
		}
	}

	if m.config.PointerFollows {
		if geo, err := m.gw.Geometry(w); err == nil {
			if err := m.gw.WarpPointer(geo.X+geo.Width/2, geo.Y+geo.Height/2); err != nil {
				m.log.Debug().Err(err).Msg("warp failed")
			}
		}
	}
}

// managed reports whether any screen tracks w.
func (m *WindowManager) managed(w xproto.Window) bool {
	for _, s := range m.screens {
		if s.Contains(w) {
			return true
		}
	}
	return false
}

// onFocusedScreen runs f on the first screen containing the focus, or,
// with no focus, the one under the pointer. No match is a silent no-op.
func (m *WindowManager) onFocusedScreen(f func(s *Screen)) {
	var px, py uint16
	if m.focus == 0 {
		x, y, err := m.gw.QueryPointer()
		if err != nil {
			m.log.Debug().Err(err).Msg("query pointer failed")
			return
		}
		px, py = uint16(x), uint16(y)
	}
	for _, s := range m.screens {
		var ok bool
		if m.focus != 0 {
			ok = s.Contains(m.focus)
		} else {
			ok = s.Area().Contains(px, py)
		}
		if ok {
			f(s)
			return
		}
	}
}

// tileScreen retiles one screen and books the unmaps Hide issued.
func (m *WindowManager) tileScreen(s *Screen) {
	hidden, err := s.Tile(m.gw, m.config.Padding, m.config.Gaps)
	for _, w := range hidden {
		m.ignoreUnmaps[w]++
	}
	if err != nil {
		m.log.Debug().Err(err).Msg("tiling failed")
	}
}

func (m *WindowManager) tileAll() {
	for _, s := range m.screens {
		m.tileScreen(s)
	}
}

// publishDesktopHints refreshes the EWMH desktop properties after any
// change to screen or desktop shape.
func (m *WindowManager) publishDesktopHints() {
	names := make([]string, 0, len(m.config.DesktopNames)*len(m.screens))
	var origins []layout.Area
	for _, s := range m.screens {
		names = append(names, m.config.DesktopNames...)
		for range s.desktops {
			origins = append(origins, s.Area())
		}
	}
	if err := m.gw.SetNumberOfDesktops(uint32(len(m.config.DesktopNames) * len(m.screens))); err != nil {
		m.log.Debug().Err(err).Msg("publish desktop count failed")
	}
	if err := m.gw.SetDesktopNames(names); err != nil {
		m.log.Debug().Err(err).Msg("publish desktop names failed")
	}
	if err := m.gw.SetDesktopViewport(origins); err != nil {
		m.log.Debug().Err(err).Msg("publish viewport failed")
	}
}
