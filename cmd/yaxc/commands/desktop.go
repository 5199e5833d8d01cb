package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Operate on desktops",
}

var desktopFocusCmd = &cobra.Command{
	Use:   "focus <index>",
	Short: "Switch the visible desktop",
	Long: `Switch the visible desktop. With pinned desktops the index counts
within the focused screen; otherwise desktops are numbered globally
across screens.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("desktop index %q: %w", args[0], err)
		}
		return send(ipc.Command{
			Kind:    ipc.CommandDesktop,
			Desktop: ipc.DesktopCommand{Kind: ipc.DesktopFocus, Desktop: uint32(n)},
		})
	},
}

func init() {
	desktopCmd.AddCommand(desktopFocusCmd)
	rootCmd.AddCommand(desktopCmd)
}
