// Command ggraph renders a repository's branch history as a graph, to a
// terminal or to SVG, using a configurable branching model to decide branch
// persistence, left-to-right order, and color.
package main

import (
	"fmt"
	"os"

	"github.com/yourusername/ggraph/internal/ggraphErr"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ggraph:", err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if ge, ok := err.(*ggraphErr.Error); ok {
		return ge.Kind.ExitCode()
	}
	return 1
}
