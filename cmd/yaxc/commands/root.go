// Package commands implements the yaxc command tree. Every leaf command
// marshals exactly one IPC command to the manager's socket.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proxin187/yaxiwm/internal/config"
	"github.com/proxin187/yaxiwm/internal/ipc"
)

var rootCmd = &cobra.Command{
	Use:   "yaxc",
	Short: "yaxc - control a running yaxiwm",
	Long: `yaxc sends commands to a running yaxiwm instance over its local
socket. Node commands operate on the focused window, desktop commands
switch the visible desktop, and config commands rewrite tunables at
runtime.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// send marshals one command to the manager.
func send(cmd ipc.Command) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	client, err := ipc.Dial(config.SocketPath(dir))
	if err != nil {
		return err
	}
	return client.Send(cmd)
}

func parseDirection(s string) (ipc.Direction, error) {
	switch s {
	case "north":
		return ipc.North, nil
	case "south":
		return ipc.South, nil
	case "west":
		return ipc.West, nil
	case "east":
		return ipc.East, nil
	}
	return 0, fmt.Errorf("direction %q, want north|south|west|east", s)
}

func parseState(s string) (ipc.State, error) {
	switch s {
	case "tiled":
		return ipc.Tiled, nil
	case "float":
		return ipc.Float, nil
	case "dock":
		return ipc.Dock, nil
	}
	return 0, fmt.Errorf("state %q, want tiled|float|dock", s)
}
