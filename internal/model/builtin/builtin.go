// Package builtin embeds the two ready-made branching models the CLI ships
// with: "git-flow" (the documented CLI default) and "simple" (master/main
// leftmost and most persistent, every other branch sharing one order group;
// a minimal starting point).
package builtin

import "embed"

//go:embed git-flow.toml simple.toml
var files embed.FS

// Names lists the embedded model names in a stable order.
var Names = []string{"git-flow", "simple"}

// Read returns the raw TOML document for an embedded model name, or
// (nil, false) if name is not one of Names.
func Read(name string) ([]byte, bool) {
	for _, n := range Names {
		if n == name {
			data, err := files.ReadFile(name + ".toml")
			if err != nil {
				return nil, false
			}
			return data, true
		}
	}
	return nil, false
}
