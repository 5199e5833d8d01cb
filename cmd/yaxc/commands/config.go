package commands

import (
	"github.com/spf13/cobra"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

func sendConfig(cfg ipc.ConfigCommand) error {
	return send(ipc.Command{Kind: ipc.CommandConfig, Config: cfg})
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Rewrite tunables at runtime",
}

var (
	desktopNames  []string
	desktopPinned bool
	desktopsCmd   = &cobra.Command{
		Use:   "desktops",
		Short: "Set desktop names and pinning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendConfig(ipc.ConfigCommand{
				Kind:     ipc.ConfigDesktops,
				Desktops: ipc.DesktopsArgs{Names: desktopNames, Pinned: desktopPinned},
			})
		},
	}
)

var (
	windowGaps uint8
	windowCmd  = &cobra.Command{
		Use:   "window",
		Short: "Set window gaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendConfig(ipc.ConfigCommand{
				Kind:   ipc.ConfigWindow,
				Window: ipc.WindowArgs{Gaps: windowGaps},
			})
		},
	}
)

var (
	borderNormal  string
	borderFocused string
	borderWidth   uint16
	borderCmd     = &cobra.Command{
		Use:   "border",
		Short: "Set border colours and width",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendConfig(ipc.ConfigCommand{
				Kind: ipc.ConfigBorder,
				Border: ipc.BorderArgs{
					Normal:  borderNormal,
					Focused: borderFocused,
					Width:   borderWidth,
				},
			})
		},
	}
)

var (
	paddingTop    uint16
	paddingBottom uint16
	paddingLeft   uint16
	paddingRight  uint16
	paddingCmd    = &cobra.Command{
		Use:   "padding",
		Short: "Reserve space on every screen edge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendConfig(ipc.ConfigCommand{
				Kind: ipc.ConfigPadding,
				Padding: ipc.PaddingArgs{
					Top:    paddingTop,
					Bottom: paddingBottom,
					Left:   paddingLeft,
					Right:  paddingRight,
				},
			})
		},
	}
)

var pointerFollowsCmd = &cobra.Command{
	Use:   "pointer-follows-focus",
	Short: "Toggle pointer warping on focus change",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendConfig(ipc.ConfigCommand{Kind: ipc.ConfigPointerFollowsFocus})
	},
}

var focusFollowsCmd = &cobra.Command{
	Use:   "focus-follows-pointer",
	Short: "Toggle focus-on-enter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendConfig(ipc.ConfigCommand{Kind: ipc.ConfigFocusFollowsPointer})
	},
}

func init() {
	desktopsCmd.Flags().StringSliceVarP(&desktopNames, "names", "n", nil, "desktop names")
	desktopsCmd.Flags().BoolVarP(&desktopPinned, "pinned", "p", false, "per-screen desktop indices")
	windowCmd.Flags().Uint8VarP(&windowGaps, "gaps", "g", 0, "gap around every tile")
	borderCmd.Flags().StringVarP(&borderNormal, "normal", "n", "000000", "normal border colour (hex RGB)")
	borderCmd.Flags().StringVarP(&borderFocused, "focused", "f", "ffffff", "focused border colour (hex RGB)")
	borderCmd.Flags().Uint16VarP(&borderWidth, "width", "w", 1, "border width in pixels")
	paddingCmd.Flags().Uint16Var(&paddingTop, "top", 0, "top padding")
	paddingCmd.Flags().Uint16Var(&paddingBottom, "bottom", 0, "bottom padding")
	paddingCmd.Flags().Uint16Var(&paddingLeft, "left", 0, "left padding")
	paddingCmd.Flags().Uint16Var(&paddingRight, "right", 0, "right padding")

	configCmd.AddCommand(desktopsCmd, windowCmd, borderCmd, paddingCmd, pointerFollowsCmd, focusFollowsCmd)
	rootCmd.AddCommand(configCmd)
}
