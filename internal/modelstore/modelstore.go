// Package modelstore persists the active branching-model name inside a
// repository's local Git config, under the [ggraph] section, so `ggraph`
// remembers a user's chosen model across invocations without a separate
// dotfile per repository.
package modelstore

import (
	"github.com/go-git/go-git/v5"

	"github.com/yourusername/ggraph/internal/ggraphErr"
)

const (
	sectionName = "ggraph"
	optionName  = "model"
)

// Get reads the active model name from repo's local config, returning ""
// when unset.
func Get(repo *git.Repository) (string, error) {
	cfg, err := repo.Config()
	if err != nil {
		return "", ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "reading repository config")
	}
	section := cfg.Raw.Section(sectionName)
	if section == nil {
		return "", nil
	}
	return section.Option(optionName), nil
}

// Set writes name as the repository's active model in local config.
func Set(repo *git.Repository, name string) error {
	cfg, err := repo.Config()
	if err != nil {
		return ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "reading repository config")
	}
	cfg.Raw.Section(sectionName).SetOption(optionName, name)
	if err := repo.SetConfig(cfg); err != nil {
		return ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "writing repository config")
	}
	return nil
}
