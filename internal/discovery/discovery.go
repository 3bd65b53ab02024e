// Package discovery produces the initial set of candidate branches from
// refs, tags, and (optionally) merge-commit messages.
package discovery

import (
	"regexp"

	"github.com/yourusername/ggraph/internal/gitrepo"
	"github.com/yourusername/ggraph/internal/model"
)

// Range is the contiguous commit-index interval a branch owns, in the
// newest=0 commit ordering. Start is the tip, End the oldest assigned
// commit. Nil until branch assignment completes.
type Range struct {
	Start int
	End   int
}

// Visual groups the layout/render-facing attributes of a BranchInfo.
type Visual struct {
	OrderGroup int
	ColorCycle []string
	ColorIndex int
}

// Color returns the single color assigned to this branch from its cycle.
func (v Visual) Color() string {
	if len(v.ColorCycle) == 0 {
		return ""
	}
	return v.ColorCycle[v.ColorIndex%len(v.ColorCycle)]
}

// BranchInfo is a candidate branch lane.
type BranchInfo struct {
	Name        string // display name, e.g. "develop", "feature/x", "origin/master", "tags/v1.0"
	Persistence int
	IsRemote    bool
	IsMerged    bool // set by assignment once another branch claims this head
	IsTag       bool
	IsFork      bool // synthesized from a merge-commit message, not a ref

	Visual            Visual
	VisualSVG         Visual
	TargetOrderGroup  int

	HeadCommitHash string
	HeadIndex      int // resolved by assignment from HeadCommitHash

	// ForkMergeIndex is the commit index of the merge that produced this
	// fork branch, set only when the summary omitted "into Y" — assignment
	// resolves TargetOrderGroup from whichever branch ends up owning that
	// merge commit. -1 otherwise.
	ForkMergeIndex int

	// ForkTargetName is the raw "into Y" branch name named by this fork's
	// merge-commit summary, or "" when the summary omitted it. Set only
	// for IsFork branches.
	ForkTargetName string

	Range  *Range
	Column *int
}

// mergeBranchPattern matches "Merge branch 'X' into Y" or "Merge branch 'X'"
// subject lines, the two forms a merge commit summary takes.
var mergeBranchPattern = regexp.MustCompile(`^Merge branch '([^']+)'(?: into (\S+))?`)

// Discover walks refs and merge-commit summaries to build the candidate
// branch set. commits must already be in the pipeline's topological order
// (newest first); it is used only to infer fork branches from merges and to
// resolve each branch's head index.
func Discover(m *model.Model, repo *gitrepo.Repository, commits []*gitrepo.Commit) ([]*BranchInfo, error) {
	commitIndex := make(map[string]int, len(commits))
	for i, c := range commits {
		commitIndex[c.Hash] = i
	}

	refs, err := repo.ListRefs(m.IncludeRemote)
	if err != nil {
		return nil, err
	}

	var branches []*BranchInfo
	byNameHead := make(map[string]bool)

	addBranch := func(b *BranchInfo) {
		key := b.Name + "\x00" + b.HeadCommitHash
		if byNameHead[key] {
			return
		}
		byNameHead[key] = true
		branches = append(branches, b)
	}

	for _, ref := range refs {
		idx, ok := commitIndex[ref.Head]
		if !ok {
			continue // head not in the displayed commit window
		}

		var matchName, displayName string
		b := &BranchInfo{HeadCommitHash: ref.Head, HeadIndex: idx, ForkMergeIndex: -1}
		switch ref.Kind {
		case gitrepo.RefBranchLocal:
			matchName = ref.Name
			displayName = ref.Name
		case gitrepo.RefBranchRemote:
			matchName = model.RemoteShortName(ref.Name)
			displayName = ref.Name
			b.IsRemote = true
		case gitrepo.RefTag:
			matchName = model.TagMatchName(ref.Name)
			displayName = "tags/" + ref.Name
			b.IsTag = true
		}
		b.Name = displayName
		b.Persistence = m.PersistenceOf(matchName)
		b.Visual.OrderGroup = m.OrderGroupOf(matchName)
		b.Visual.ColorCycle, b.Visual.ColorIndex = m.TerminalColorOf(matchName)
		b.VisualSVG.ColorCycle, b.VisualSVG.ColorIndex = m.SVGColorOf(matchName)
		b.TargetOrderGroup = b.Visual.OrderGroup
		addBranch(b)
	}

	if m.MergeMessageInference {
		inferForkBranches(m, commits, commitIndex, branches, addBranch)
	}

	return branches, nil
}

func inferForkBranches(
	m *model.Model,
	commits []*gitrepo.Commit,
	commitIndex map[string]int,
	existing []*BranchInfo,
	addBranch func(*BranchInfo),
) {
	headHasBranch := make(map[string]bool, len(existing))
	for _, b := range existing {
		headHasBranch[b.HeadCommitHash] = true
	}

	nameToOrderGroup := make(map[string]int, len(existing))
	for _, b := range existing {
		nameToOrderGroup[b.Name] = b.Visual.OrderGroup
	}

	for i, c := range commits {
		if len(c.Parents) < 2 {
			continue
		}
		matches := mergeBranchPattern.FindStringSubmatch(c.Summary)
		if matches == nil {
			continue // malformed/absent merge summary is not an error
		}
		forkedName := matches[1]
		targetName := matches[2]

		secondParent := c.Parents[1]
		if headHasBranch[secondParent] {
			continue // a real ref already claims this head
		}
		parentIdx, ok := commitIndex[secondParent]
		if !ok {
			continue
		}

		matchName := model.ForkMatchName(forkedName)
		b := &BranchInfo{
			Name:           forkedName,
			IsFork:         true,
			Persistence:    m.PersistenceLen(), // fork/ branches never match persistence
			HeadCommitHash: secondParent,
			HeadIndex:      parentIdx,
			ForkMergeIndex: -1,
			ForkTargetName: targetName,
		}
		b.Visual.OrderGroup = m.OrderGroupOf(matchName)
		b.Visual.ColorCycle, b.Visual.ColorIndex = m.TerminalColorOf(matchName)
		b.VisualSVG.ColorCycle, b.VisualSVG.ColorIndex = m.SVGColorOf(matchName)

		b.TargetOrderGroup = b.Visual.OrderGroup
		if targetName != "" {
			if g, ok := nameToOrderGroup[targetName]; ok {
				b.TargetOrderGroup = g
			}
		} else {
			// enclosing branch Y defaults to whichever branch ends up owning
			// this merge commit; resolved by assignment once it knows that.
			b.ForkMergeIndex = i
		}

		headHasBranch[secondParent] = true
		nameToOrderGroup[b.Name] = b.Visual.OrderGroup
		addBranch(b)
	}
}
