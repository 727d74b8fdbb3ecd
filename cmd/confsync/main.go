// Command confsync synchronises a git-versioned configuration repository
// with the control plane.
package main

import (
	"os"

	"github.com/crestline-labs/confsync/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
