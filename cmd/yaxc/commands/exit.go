package commands

import (
	"github.com/spf13/cobra"

	"github.com/proxin187/yaxiwm/internal/ipc"
)

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Shut the manager down",
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(ipc.Command{Kind: ipc.CommandExit})
	},
}

func init() {
	rootCmd.AddCommand(exitCmd)
}
