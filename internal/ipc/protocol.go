// Package ipc defines the wire protocol spoken between the yaxiwm daemon
// and the yaxc client: the command grammar, and a versioned gob framing
// of it. One command is sent per connection; end-of-stream marks the end
// of the message.
//
// The schema is a kind-tagged union: every level carries a Kind field
// selecting which of its sibling payload fields is meaningful. Both ends
// share this package, and the envelope carries Version so a mismatched
// pair fails loudly instead of misparsing.
package ipc

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Version is the protocol version carried in every envelope. Bump it on
// any change to the command grammar; the receiver rejects mismatches.
const Version uint8 = 1

// Direction describes where a new leaf is grafted relative to the target.
// North/South split horizontally (stacked), West/East vertically (side by
// side). East and South place the new window as the right/bottom child.
type Direction uint8

const (
	North Direction = iota
	South
	West
	East
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "unknown"
}

// State is a client's management category.
type State uint8

const (
	Tiled State = iota
	Float
	Dock
)

// Toggle maps Float<->Tiled. Dock windows stay docked.
func (s State) Toggle() State {
	switch s {
	case Float:
		return Tiled
	case Tiled:
		return Float
	}
	return Dock
}

func (s State) String() string {
	switch s {
	case Tiled:
		return "tiled"
	case Float:
		return "float"
	case Dock:
		return "dock"
	}
	return "unknown"
}

var (
	dockTypes  = []string{"_NET_WM_WINDOW_TYPE_DOCK", "_NET_WM_WINDOW_TYPE_TOOLBAR", "_NET_WM_WINDOW_TYPE_MENU"}
	floatTypes = []string{"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_UTILITY", "_NET_WM_WINDOW_TYPE_DIALOG"}
)

// StateFromTypes derives a window's State from its EWMH window-type atom
// names. Dock-like types win over float-like ones; anything else tiles.
func StateFromTypes(types []string) State {
	for _, t := range types {
		for _, d := range dockTypes {
			if t == d {
				return Dock
			}
		}
	}
	for _, t := range types {
		for _, f := range floatTypes {
			if t == f {
				return Float
			}
		}
	}
	return Tiled
}

// ChangeKind selects how a Ratio command combines with the current ratio.
type ChangeKind uint8

const (
	Add ChangeKind = iota
	Sub
	Set
)

// Change is a ratio mutation.
type Change struct {
	Kind  ChangeKind
	Value int8
}

// Descriptor, Modifier and Jump make up the Selector grammar. The wire
// schema is richer than the behaviour the receiver implements: the full
// grammar is parsed and carried, and the receiver operates on the
// current focus regardless of what was selected. Unknown combinations
// never error.
type Descriptor uint8

const (
	DescriptorAny Descriptor = iota
	DescriptorFirstAncestor
	DescriptorLast
	DescriptorNewest
	DescriptorOlder
	DescriptorNewer
	DescriptorFocused
	DescriptorBiggest
	DescriptorSmallest
)

type Modifier uint8

const (
	ModifierFocused Modifier = iota
	ModifierActive
	ModifierLocal
	ModifierLeaf
	ModifierTiled
	ModifierFloating
	ModifierFullscreen
	ModifierDescendantOf
	ModifierAncestorOf
)

type Jump uint8

const (
	JumpFirst Jump = iota
	JumpSecond
	JumpBrother
	JumpParent
)

// Selector targets a node for a node command.
type Selector struct {
	Descriptor Descriptor
	Modifier   Modifier
	Path       []Jump
}

// CommandKind selects the top-level command variant.
type CommandKind uint8

const (
	CommandNode CommandKind = iota
	CommandDesktop
	CommandConfig
	CommandExit
)

// Command is the top level of the grammar. Exactly the payload selected
// by Kind is meaningful.
type Command struct {
	Kind    CommandKind
	Node    NodeCommand
	Desktop DesktopCommand
	Config  ConfigCommand
}

// NodeKind selects the node operation.
type NodeKind uint8

const (
	NodeInsert NodeKind = iota
	NodeState
	NodeDesktop
	NodeMove
	NodeRatio
	NodeReverse
	NodeClose
	NodeKill
)

// NodeCommand operates on a single node (the current focus).
type NodeCommand struct {
	Kind     NodeKind
	Selector Selector
	Insert   InsertArgs
	State    StateArgs
	Desktop  uint32
	Move     MoveArgs
	Change   Change
}

// InsertArgs sets the default insertion parameters for future windows.
// With Toggle set, selecting the already-active insert reverts to the
// default. Ratio is meaningful only when HasRatio is set; otherwise the
// current ratio is kept.
type InsertArgs struct {
	Dir      Direction
	Ratio    int8
	HasRatio bool
	Toggle   bool
}

// StateArgs changes the focused window's State. With Toggle set,
// requesting the state it already has flips it instead.
type StateArgs struct {
	State  State
	Toggle bool
}

// MoveArgs translates the focused window by a pixel delta. Coordinates
// clamp at zero.
type MoveArgs struct {
	Dx int32
	Dy int32
}

// DesktopKind selects the desktop operation.
type DesktopKind uint8

const (
	DesktopFocus DesktopKind = iota
)

// DesktopCommand switches the visible desktop. Pinned configurations
// index within the focused screen; otherwise indices run globally across
// screens.
type DesktopCommand struct {
	Kind    DesktopKind
	Desktop uint32
}

// ConfigKind selects the configuration field to rewrite.
type ConfigKind uint8

const (
	ConfigDesktops ConfigKind = iota
	ConfigWindow
	ConfigBorder
	ConfigPadding
	ConfigPointerFollowsFocus
	ConfigFocusFollowsPointer
)

// ConfigCommand rewrites one configuration field.
type ConfigCommand struct {
	Kind     ConfigKind
	Desktops DesktopsArgs
	Window   WindowArgs
	Border   BorderArgs
	Padding  PaddingArgs
}

// DesktopsArgs renames and recounts the desktops on every screen.
type DesktopsArgs struct {
	Names  []string
	Pinned bool
}

// WindowArgs sets window-level tunables.
type WindowArgs struct {
	Gaps uint8
}

// BorderArgs sets the border colours (hex RGB strings) and width.
type BorderArgs struct {
	Normal  string
	Focused string
	Width   uint16
}

// PaddingArgs reserves space on every screen edge.
type PaddingArgs struct {
	Top    uint16
	Bottom uint16
	Left   uint16
	Right  uint16
}

// envelope is the on-wire frame.
type envelope struct {
	Version uint8
	Command Command
}

// Encode writes one framed command to w.
func Encode(w io.Writer, cmd Command) error {
	return gob.NewEncoder(w).Encode(envelope{Version: Version, Command: cmd})
}

// Decode reads one framed command from r.
func Decode(r io.Reader) (Command, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return Command{}, fmt.Errorf("ipc: decode: %w", err)
	}
	if env.Version != Version {
		return Command{}, fmt.Errorf("ipc: protocol version %d, want %d", env.Version, Version)
	}
	return env.Command, nil
}
