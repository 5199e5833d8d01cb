// Package startup runs the user's autostart script once, through an
// embedded POSIX shell, and waits for it.
package startup

import (
	"context"
	"fmt"
	"os"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Run executes the script at path. A missing script is not an error; a
// script that fails to parse or exits non-zero is.
func Run(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("startup: open %s: %w", path, err)
	}
	defer file.Close()

	prog, err := syntax.NewParser().Parse(file, path)
	if err != nil {
		return fmt.Errorf("startup: parse %s: %w", path, err)
	}

	runner, err := interp.New(
		interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("startup: shell: %w", err)
	}
	if err := runner.Run(context.Background(), prog); err != nil {
		return fmt.Errorf("startup: run %s: %w", path, err)
	}
	return nil
}
