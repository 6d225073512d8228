// Command partialgen writes explicit partial descriptor tables for tracked
// struct types, so that decoding never walks reflect metadata.
package main

import (
	"fmt"
	"os"

	"github.com/reoring/partial/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "partialgen:", err)
		os.Exit(1)
	}
}
