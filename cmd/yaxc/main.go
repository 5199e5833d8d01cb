// yaxc is the command-line client for yaxiwm.
package main

import "github.com/proxin187/yaxiwm/cmd/yaxc/commands"

func main() {
	commands.Execute()
}
