// Command askdoc answers questions about a single document using
// retrieval-augmented generation.
package main

import (
	"os"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
