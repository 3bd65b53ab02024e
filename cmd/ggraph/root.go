package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/yourusername/ggraph/internal/assign"
	"github.com/yourusername/ggraph/internal/branchlayout"
	"github.com/yourusername/ggraph/internal/cliconfig"
	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/format"
	"github.com/yourusername/ggraph/internal/ggraphErr"
	"github.com/yourusername/ggraph/internal/gitrepo"
	"github.com/yourusername/ggraph/internal/grid"
	"github.com/yourusername/ggraph/internal/model"
	"github.com/yourusername/ggraph/internal/modelstore"
	"github.com/yourusername/ggraph/internal/pager"
	svgrender "github.com/yourusername/ggraph/internal/render/svg"
	termrender "github.com/yourusername/ggraph/internal/render/term"
)

type rootFlags struct {
	path          string
	modelName     string
	style         string
	formatSpec    string
	maxCount      int
	wrap          string
	local         bool
	sparse        bool
	debug         bool
	svg           bool
	color         string
	noColor       bool
	noPager       bool
	copyToClip    bool
	packOrder     string
	packDirection string
}

// Execute builds and runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ggraph",
		Short: "Render a Git repository's branch history as a graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.path, "path", ".", "path to the repository")
	cmd.Flags().StringVarP(&flags.modelName, "model", "m", "", "branching model name (overrides the repository's remembered model)")
	cmd.Flags().StringVarP(&flags.style, "style", "s", "", "line style: normal, round, bold, double, ascii")
	cmd.Flags().StringVarP(&flags.formatSpec, "format", "f", "", "commit format preset or template")
	cmd.Flags().IntVarP(&flags.maxCount, "max-count", "n", 0, "maximum number of commits to show (0 = unlimited)")
	cmd.Flags().StringVarP(&flags.wrap, "wrap", "w", "", "wrap mode: auto, none, or \"WIDTH [IND1 [IND2]]\"")
	cmd.Flags().BoolVarP(&flags.local, "local", "l", false, "omit remote branches (and forks merged into them)")
	cmd.Flags().BoolVarP(&flags.sparse, "sparse", "S", false, "use sparse merge-connector routing")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "print pipeline diagnostics to stderr")
	cmd.Flags().BoolVar(&flags.svg, "svg", false, "render to SVG instead of the terminal")
	cmd.Flags().StringVar(&flags.color, "color", "", "color mode: auto, always, or never")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "force-disable color")
	cmd.Flags().BoolVar(&flags.noPager, "no-pager", false, "never pipe output through a pager")
	cmd.Flags().BoolVar(&flags.copyToClip, "copy", false, "copy the rendered graph to the clipboard")
	cmd.Flags().StringVar(&flags.packOrder, "pack-order", "shortest-first", "branch packing order: shortest-first or longest-first")
	cmd.Flags().StringVar(&flags.packDirection, "pack-direction", "forward", "tie-break direction: forward or backward")

	cmd.AddCommand(newModelCmd())

	return cmd
}

func runGraph(stdout io.Writer, flags *rootFlags) error {
	cfg, err := cliconfig.Load()
	if err != nil {
		return ggraphErr.Wrap(ggraphErr.KindIO, err, "loading ambient config")
	}

	repo, err := gitrepo.Open(flags.path)
	if err != nil {
		return err
	}

	modelName := resolveModelName(flags.modelName, repo, cfg)
	m, err := model.Load(modelName)
	if err != nil {
		return err
	}
	if flags.local {
		m.IncludeRemote = false
	}

	commits, err := repo.GetCommits(flags.maxCount)
	if err != nil {
		return err
	}

	branches, err := discovery.Discover(m, repo, commits)
	if err != nil {
		return err
	}
	if flags.local {
		branches, err = suppressForksIntoRemoteOnlyBranches(repo, branches)
		if err != nil {
			return err
		}
	}

	result := assign.Assign(branches, commits)

	layoutOpts := branchlayout.Options{
		ShortestFirst: flags.packOrder != "longest-first",
		Forward:       flags.packDirection != "backward",
	}
	branchlayout.Pack(result.Branches, layoutOpts)

	g := grid.Build(result.DisplayedCommits, result.DisplayedBranchOf, result.Branches, flags.sparse)

	if flags.debug {
		printDebug(os.Stderr, repo, m, commits, result, g)
	}

	formatSpec := flags.formatSpec
	if formatSpec == "" {
		formatSpec = cfg.Commit.Format
	}
	template := format.ResolveSpec(formatSpec)

	wrapOpts := resolveWrap(flags.wrap, cfg.Render.Wrap)

	var buf bytes.Buffer
	target := io.Writer(&buf)

	if flags.svg {
		if err := svgrender.Render(target, result, g, svgrender.DefaultOptions()); err != nil {
			return ggraphErr.Wrap(ggraphErr.KindRender, err, "rendering svg")
		}
	} else {
		styleName := flags.style
		if styleName == "" {
			styleName = cfg.Render.Style
		}
		colorEnabled := resolveColorFlag(flags, cfg, stdout)
		opts := termrender.Options{
			Style:    termrender.ParseStyle(styleName),
			Color:    colorEnabled,
			Template: template,
			Wrap:     wrapOpts,
		}
		if err := termrender.Render(target, result, g, opts); err != nil {
			return ggraphErr.Wrap(ggraphErr.KindRender, err, "rendering graph")
		}
	}

	if flags.copyToClip {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return ggraphErr.Wrap(ggraphErr.KindIO, err, "copying to clipboard")
		}
	}

	return flushOutput(stdout, buf.Bytes(), flags, cfg)
}

func flushOutput(stdout io.Writer, content []byte, flags *rootFlags, cfg *cliconfig.Config) error {
	usePager := cfg.Pager.Enabled && !flags.noPager && !flags.svg
	if !usePager {
		_, err := stdout.Write(content)
		if err != nil && !errors.Is(err, syscall.EPIPE) {
			return ggraphErr.Wrap(ggraphErr.KindIO, err, "writing output")
		}
		return nil
	}

	p, err := pager.Start(pager.Command(cfg.Pager.Command))
	if err != nil {
		// Fall back to direct output when no pager is available.
		_, werr := stdout.Write(content)
		return werr
	}
	if _, err := p.Write(content); err != nil && !errors.Is(err, syscall.EPIPE) {
		return err
	}
	return p.Close()
}

func resolveModelName(flagValue string, repo *gitrepo.Repository, cfg *cliconfig.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if name, err := modelstore.Get(repo.GoGit()); err == nil && name != "" {
		return name
	}
	return cfg.Defaults.Model
}

func resolveColorFlag(flags *rootFlags, cfg *cliconfig.Config, stdout io.Writer) bool {
	if flags.noColor {
		return false
	}
	mode := flags.color
	if mode == "" {
		mode = cfg.Render.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return termrender.ResolveColor(false, stdout)
	}
}

// suppressForksIntoRemoteOnlyBranches drops inferred fork branches whose
// merge summary named a target branch that exists only as a remote ref —
// with --local already excluding remotes from discovery, such a fork would
// otherwise dangle with no visible target. Forks with no named target, or
// one that matches a local branch, are kept.
func suppressForksIntoRemoteOnlyBranches(repo *gitrepo.Repository, branches []*discovery.BranchInfo) ([]*discovery.BranchInfo, error) {
	refs, err := repo.ListRefs(true)
	if err != nil {
		return nil, err
	}

	local := make(map[string]bool)
	remote := make(map[string]bool)
	for _, ref := range refs {
		switch ref.Kind {
		case gitrepo.RefBranchLocal:
			local[ref.Name] = true
		case gitrepo.RefBranchRemote:
			remote[model.RemoteShortName(ref.Name)] = true
		}
	}

	remoteOnly := make(map[string]bool, len(remote))
	for name := range remote {
		if !local[name] {
			remoteOnly[name] = true
		}
	}

	out := make([]*discovery.BranchInfo, 0, len(branches))
	for _, b := range branches {
		if b.IsFork && b.ForkTargetName != "" && remoteOnly[b.ForkTargetName] {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func resolveWrap(flagValue, configValue string) format.WrapOptions {
	value := flagValue
	if value == "" {
		value = configValue
	}
	return parseWrapSpec(value)
}

func newModelCmd() *cobra.Command {
	var list bool
	var path string

	cmd := &cobra.Command{
		Use:   "model [NAME]",
		Short: "Show, set, or list branching models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := model.List()
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			repo, err := gitrepo.Open(path)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				name, err := modelstore.Get(repo.GoGit())
				if err != nil {
					return err
				}
				if name == "" {
					name = "(none — falling back to config default)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			}

			name := args[0]
			if _, err := model.Load(name); err != nil {
				return err
			}
			return modelstore.Set(repo.GoGit(), name)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list available model names")
	cmd.Flags().StringVar(&path, "path", ".", "path to the repository")

	return cmd
}

func printDebug(w io.Writer, repo *gitrepo.Repository, m *model.Model, commits []*gitrepo.Commit, result *assign.Result, g *grid.Grid) {
	fmt.Fprintf(w, "ggraph: repository %s\n", repo.Path())
	fmt.Fprintf(w, "ggraph: %d branches, %d displayed commits, grid %dx%d\n",
		len(result.Branches), len(result.DisplayedCommits), g.Rows, g.Cols)
	for _, b := range result.Branches {
		rangeDesc := "unassigned"
		if b.Range != nil {
			rangeDesc = fmt.Sprintf("[%d,%d]", b.Range.Start, b.Range.End)
		}
		colDesc := "-"
		if b.Column != nil {
			colDesc = fmt.Sprintf("%d", *b.Column)
		}
		fmt.Fprintf(w, "ggraph:   %-30s persistence=%d order=%d range=%s column=%s\n",
			b.Name, b.Persistence, discoveryOrderGroup(b), rangeDesc, colDesc)
	}
	for i, c := range commits {
		if result.IndexMap[i] == -1 {
			fmt.Fprintf(w, "ggraph: dropped %s %s\n", c.ShortHash, c.Summary)
		}
	}
}

func discoveryOrderGroup(b *discovery.BranchInfo) int {
	return b.Visual.OrderGroup
}
