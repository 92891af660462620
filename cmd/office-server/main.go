// Command office-server exposes Word, Excel and PowerPoint automation over
// HTTP and MCP.
package main

import (
	"os"
)

var (
	version = "dev"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
