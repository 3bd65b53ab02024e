package model

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/yourusername/ggraph/internal/ggraphErr"
	"github.com/yourusername/ggraph/internal/model/builtin"
)

// ConfigDir returns the directory models are looked up from,
// $XDG_CONFIG_HOME/ggraph/models with a ~/.config fallback, mirroring the
// teacher's config.Load home-directory resolution.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ggraph", "models"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", ggraphErr.Wrap(ggraphErr.KindInvalidModel, err, "resolving home directory")
	}
	return filepath.Join(home, ".config", "ggraph", "models"), nil
}

// Load resolves a model name to a file in the user's config directory,
// falling back to an embedded built-in model of the same name, and parses
// it into a Model. An invalid pattern fails construction
// with a specific error.
func Load(name string) (*Model, error) {
	dir, err := ConfigDir()
	if err == nil {
		path := filepath.Join(dir, name+".toml")
		if data, readErr := os.ReadFile(path); readErr == nil {
			return Parse(data)
		}
	}

	if data, ok := builtin.Read(name); ok {
		return Parse(data)
	}

	return nil, ggraphErr.New(ggraphErr.KindInvalidModel, "model not found: "+name)
}

// List enumerates available model names: embedded built-ins first, then any
// *.toml files found in the user's config directory, de-duplicated.
func List() ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, n := range builtin.Names {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	dir, err := ConfigDir()
	if err != nil {
		return names, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names, nil
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		const ext = ".toml"
		if len(n) > len(ext) && n[len(n)-len(ext):] == ext {
			base := n[:len(n)-len(ext)]
			if !seen[base] {
				seen[base] = true
				names = append(names, base)
			}
		}
	}
	return names, nil
}
