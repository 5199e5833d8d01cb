package wm

import (
	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/proxin187/yaxiwm/internal/layout"
)

// handleCommand applies one IPC command. Validation failures drop the
// command with a log line; they never stop the loop.
func (m *WindowManager) handleCommand(cmd *ipc.Command) {
	switch cmd.Kind {
	case ipc.CommandNode:
		m.handleNode(cmd.Node)
	case ipc.CommandDesktop:
		m.handleDesktop(cmd.Desktop)
	case ipc.CommandConfig:
		m.handleConfig(cmd.Config)
	case ipc.CommandExit:
		m.shouldClose = true
	default:
		m.log.Warn().Uint8("kind", uint8(cmd.Kind)).Msg("dropping unknown command")
	}
}

// handleNode applies a node command. The selector grammar is carried on
// the wire but the implemented subset always targets the current focus.
func (m *WindowManager) handleNode(cmd ipc.NodeCommand) {
	switch cmd.Kind {
	case ipc.NodeInsert:
		ratio := m.config.Insert.Ratio
		if cmd.Insert.HasRatio {
			ratio = config.ClampRatio(cmd.Insert.Ratio)
		}
		insert := config.Insert{Dir: cmd.Insert.Dir, Ratio: ratio}
		if cmd.Insert.Toggle && insert == m.config.Insert {
			m.config.Insert = config.DefaultInsert()
		} else {
			m.config.Insert = insert
		}

	case ipc.NodeState:
		if m.focus == 0 {
			return
		}
		w := m.focus
		m.onFocusedScreen(func(s *Screen) {
			old := s.Remove(w)
			target := cmd.State.State
			if cmd.State.Toggle && old == cmd.State.State {
				target = cmd.State.State.Toggle()
			}
			s.Insert(w, m.config.Insert, layout.AnyPoint(), target)
			m.tileScreen(s)
		})

	case ipc.NodeDesktop:
		if m.focus == 0 {
			return
		}
		w := m.focus
		m.onFocusedScreen(func(s *Screen) {
			n := int(cmd.Desktop)
			if n >= len(s.desktops) || n == s.current {
				return
			}
			state := s.Remove(w)
			s.desktops[n].Insert(w, m.config.Insert, layout.AnyPoint(), state)
			m.focus = 0
			m.tileScreen(s)
		})

	case ipc.NodeMove:
		if m.focus == 0 {
			return
		}
		geo, err := m.gw.Geometry(m.focus)
		if err != nil {
			m.log.Debug().Err(err).Msg("geometry failed")
			return
		}
		x := int32(geo.X) + cmd.Move.Dx
		if x < 0 {
			x = 0
		}
		y := int32(geo.Y) + cmd.Move.Dy
		if y < 0 {
			y = 0
		}
		if err := m.gw.MoveResizeWindow(m.focus, uint16(x), uint16(y), geo.Width, geo.Height); err != nil {
			m.log.Debug().Err(err).Msg("move failed")
		}

	case ipc.NodeRatio:
		if m.focus == 0 {
			return
		}
		w := m.focus
		m.onFocusedScreen(func(s *Screen) {
			s.MapInternal(w, func(left, right *layout.Node, insert config.Insert) *layout.Node {
				ratio := int(insert.Ratio)
				switch cmd.Change.Kind {
				case ipc.Add:
					ratio += int(cmd.Change.Value)
				case ipc.Sub:
					ratio -= int(cmd.Change.Value)
				case ipc.Set:
					ratio = int(cmd.Change.Value)
				}
				if ratio < 10 {
					ratio = 10
				} else if ratio > 90 {
					ratio = 90
				}
				insert.Ratio = int8(ratio)
				return &layout.Node{Left: left, Right: right, Insert: insert}
			})
			m.tileScreen(s)
		})

	case ipc.NodeReverse:
		if m.focus == 0 {
			return
		}
		w := m.focus
		m.onFocusedScreen(func(s *Screen) {
			s.MapInternal(w, func(left, right *layout.Node, insert config.Insert) *layout.Node {
				node := &layout.Node{Left: left, Right: right, Insert: insert}
				node.Reverse()
				return node
			})
			m.tileScreen(s)
		})

	case ipc.NodeClose:
		if m.focus == 0 {
			return
		}
		data := [5]uint32{uint32(m.atoms.wmDelete)}
		if err := m.gw.SendClientMessage(m.focus, m.atoms.wmProtocols, data); err != nil {
			m.log.Debug().Err(err).Msg("close failed")
		}

	case ipc.NodeKill:
		if m.focus == 0 {
			return
		}
		if err := m.gw.KillClient(m.focus); err != nil {
			m.log.Debug().Err(err).Msg("kill failed")
		}
	}
}

func (m *WindowManager) handleDesktop(cmd ipc.DesktopCommand) {
	switch cmd.Kind {
	case ipc.DesktopFocus:
		m.focusDesktop(cmd.Desktop)
	}
}

// focusDesktop switches the visible desktop. Pinned configurations index
// within the focused screen; otherwise indices run globally, screen by
// screen, and n lands on the screen whose range covers it.
func (m *WindowManager) focusDesktop(n uint32) {
	if m.config.DesktopsPinned {
		m.onFocusedScreen(func(s *Screen) {
			if int(n) >= len(s.desktops) {
				return
			}
			s.current = int(n)
			m.setCurrentDesktop(n)
			m.tileScreen(s)
		})
		return
	}
	for i, s := range m.screens {
		k := len(s.desktops)
		if k == 0 {
			continue
		}
		if int(n) >= i*k && int(n) < (i+1)*k {
			s.current = int(n) - i*k
			m.setCurrentDesktop(n)
			m.tileScreen(s)
			return
		}
	}
}

func (m *WindowManager) setCurrentDesktop(n uint32) {
	if err := m.gw.SetCurrentDesktop(n); err != nil {
		m.log.Debug().Err(err).Msg("publish current desktop failed")
	}
}

func (m *WindowManager) handleConfig(cmd ipc.ConfigCommand) {
	switch cmd.Kind {
	case ipc.ConfigDesktops:
		if len(cmd.Desktops.Names) == 0 {
			m.log.Warn().Msg("dropping desktops command with no names")
			return
		}
		m.config.DesktopNames = cmd.Desktops.Names
		m.config.DesktopsPinned = cmd.Desktops.Pinned
		for _, s := range m.screens {
			s.Resize(len(cmd.Desktops.Names))
		}
		m.publishDesktopHints()
		m.tileAll()

	case ipc.ConfigWindow:
		m.config.Gaps = cmd.Window.Gaps
		m.tileAll()

	case ipc.ConfigBorder:
		normal, err := config.ParseColor(cmd.Border.Normal)
		if err != nil {
			m.log.Warn().Err(err).Msg("dropping border command")
			return
		}
		focused, err := config.ParseColor(cmd.Border.Focused)
		if err != nil {
			m.log.Warn().Err(err).Msg("dropping border command")
			return
		}
		m.config.BorderNormal = normal
		m.config.BorderFocused = focused
		m.config.BorderWidth = cmd.Border.Width
		m.repaintBorders()
		m.tileAll()

	case ipc.ConfigPadding:
		m.config.Padding = config.Padding{
			Top:    cmd.Padding.Top,
			Bottom: cmd.Padding.Bottom,
			Left:   cmd.Padding.Left,
			Right:  cmd.Padding.Right,
		}
		m.tileAll()

	case ipc.ConfigPointerFollowsFocus:
		m.config.PointerFollows = !m.config.PointerFollows

	case ipc.ConfigFocusFollowsPointer:
		m.config.FocusFollows = !m.config.FocusFollows
	}
}

// repaintBorders applies the current border tunables to every managed
// window; partition only moves and maps, so colour changes would
// otherwise reach new clients only.
func (m *WindowManager) repaintBorders() {
	for _, s := range m.screens {
		for _, d := range s.desktops {
			for _, w := range d.Windows() {
				colour := m.config.BorderNormal
				if w == m.focus {
					colour = m.config.BorderFocused
				}
				if err := m.gw.SetBorderColor(w, colour); err != nil {
					m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("border colour failed")
				}
				if err := m.gw.SetBorderWidth(w, m.config.BorderWidth); err != nil {
					m.log.Debug().Err(err).Uint32("window", uint32(w)).Msg("border width failed")
				}
			}
		}
	}
}
