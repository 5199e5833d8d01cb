package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

var selectorFlags struct {
	descriptor string
	modifier   string
	path       []string
}

var descriptors = map[string]ipc.Descriptor{
	"any":            ipc.DescriptorAny,
	"first-ancestor": ipc.DescriptorFirstAncestor,
	"last":           ipc.DescriptorLast,
	"newest":         ipc.DescriptorNewest,
	"older":          ipc.DescriptorOlder,
	"newer":          ipc.DescriptorNewer,
	"focused":        ipc.DescriptorFocused,
	"biggest":        ipc.DescriptorBiggest,
	"smallest":       ipc.DescriptorSmallest,
}

var modifiers = map[string]ipc.Modifier{
	"focused":       ipc.ModifierFocused,
	"active":        ipc.ModifierActive,
	"local":         ipc.ModifierLocal,
	"leaf":          ipc.ModifierLeaf,
	"tiled":         ipc.ModifierTiled,
	"floating":      ipc.ModifierFloating,
	"fullscreen":    ipc.ModifierFullscreen,
	"descendant-of": ipc.ModifierDescendantOf,
	"ancestor-of":   ipc.ModifierAncestorOf,
}

var jumps = map[string]ipc.Jump{
	"first":   ipc.JumpFirst,
	"second":  ipc.JumpSecond,
	"brother": ipc.JumpBrother,
	"parent":  ipc.JumpParent,
}

// selector builds the wire selector from the shared flags. Unrecognised
// values fall back to the focused defaults rather than erroring: the
// receiver ignores combinations it does not implement.
func selector() ipc.Selector {
	sel := ipc.Selector{
		Descriptor: ipc.DescriptorFocused,
		Modifier:   ipc.ModifierFocused,
	}
	if d, ok := descriptors[selectorFlags.descriptor]; ok {
		sel.Descriptor = d
	}
	if m, ok := modifiers[selectorFlags.modifier]; ok {
		sel.Modifier = m
	}
	for _, p := range selectorFlags.path {
		if j, ok := jumps[p]; ok {
			sel.Path = append(sel.Path, j)
		}
	}
	return sel
}

func sendNode(node ipc.NodeCommand) error {
	node.Selector = selector()
	return send(ipc.Command{Kind: ipc.CommandNode, Node: node})
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Operate on the focused window",
}

var (
	insertRatio  int8
	insertToggle bool
	insertCmd    = &cobra.Command{
		Use:   "insert <north|south|west|east>",
		Short: "Set the default insertion direction and ratio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[0])
			if err != nil {
				return err
			}
			return sendNode(ipc.NodeCommand{
				Kind: ipc.NodeInsert,
				Insert: ipc.InsertArgs{
					Dir:      dir,
					Ratio:    insertRatio,
					HasRatio: cmd.Flags().Changed("ratio"),
					Toggle:   insertToggle,
				},
			})
		},
	}
)

var (
	stateToggle bool
	stateCmd    = &cobra.Command{
		Use:   "state <tiled|float|dock>",
		Short: "Change the focused window's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := parseState(args[0])
			if err != nil {
				return err
			}
			return sendNode(ipc.NodeCommand{
				Kind:  ipc.NodeState,
				State: ipc.StateArgs{State: state, Toggle: stateToggle},
			})
		},
	}
)

var nodeDesktopCmd = &cobra.Command{
	Use:   "desktop <index>",
	Short: "Move the focused window to a desktop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("desktop index %q: %w", args[0], err)
		}
		return sendNode(ipc.NodeCommand{Kind: ipc.NodeDesktop, Desktop: uint32(n)})
	},
}

var (
	moveDx  int32
	moveDy  int32
	moveCmd = &cobra.Command{
		Use:   "move",
		Short: "Translate the focused floating window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendNode(ipc.NodeCommand{
				Kind: ipc.NodeMove,
				Move: ipc.MoveArgs{Dx: moveDx, Dy: moveDy},
			})
		},
	}
)

var ratioCmd = &cobra.Command{
	Use:   "ratio <add|sub|set> <value>",
	Short: "Change the split ratio above the focused window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind ipc.ChangeKind
		switch args[0] {
		case "add":
			kind = ipc.Add
		case "sub":
			kind = ipc.Sub
		case "set":
			kind = ipc.Set
		default:
			return fmt.Errorf("change %q, want add|sub|set", args[0])
		}
		value, err := strconv.ParseInt(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("value %q: %w", args[1], err)
		}
		return sendNode(ipc.NodeCommand{
			Kind:   ipc.NodeRatio,
			Change: ipc.Change{Kind: kind, Value: int8(value)},
		})
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Mirror the subtree above the focused window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendNode(ipc.NodeCommand{Kind: ipc.NodeReverse})
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Politely close the focused window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendNode(ipc.NodeCommand{Kind: ipc.NodeClose})
	},
}

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Forcibly kill the focused client",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendNode(ipc.NodeCommand{Kind: ipc.NodeKill})
	},
}

func init() {
	nodeCmd.PersistentFlags().StringVar(&selectorFlags.descriptor, "descriptor", "focused", "node descriptor")
	nodeCmd.PersistentFlags().StringVar(&selectorFlags.modifier, "modifier", "focused", "node modifier")
	nodeCmd.PersistentFlags().StringSliceVar(&selectorFlags.path, "path", nil, "path jumps")

	insertCmd.Flags().Int8Var(&insertRatio, "ratio", 50, "split ratio")
	insertCmd.Flags().BoolVarP(&insertToggle, "toggle", "t", false, "revert when already active")
	stateCmd.Flags().BoolVarP(&stateToggle, "toggle", "t", false, "flip when already set")
	moveCmd.Flags().Int32Var(&moveDx, "dx", 0, "horizontal delta")
	moveCmd.Flags().Int32Var(&moveDy, "dy", 0, "vertical delta")

	nodeCmd.AddCommand(insertCmd, stateCmd, nodeDesktopCmd, moveCmd, ratioCmd, reverseCmd, closeCmd, killCmd)
	rootCmd.AddCommand(nodeCmd)
}
