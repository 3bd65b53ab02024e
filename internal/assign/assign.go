// Package assign back-traces first-parent chains from each branch head, in
// persistence order, to assign every commit to exactly one branch.
package assign

import (
	"sort"

	"github.com/yourusername/ggraph/internal/discovery"
	"github.com/yourusername/ggraph/internal/gitrepo"
)

// Result is the output of Assign: the per-commit branch index and the
// filtered commit/index-map pair.
type Result struct {
	// Branches is the input slice, mutated in place: Range and IsMerged are
	// filled in, TargetOrderGroup is resolved for forks that omitted "into Y".
	Branches []*discovery.BranchInfo

	// BranchOf maps an ORIGINAL commit index to the branch that owns it, or
	// -1 if the commit was never assigned (and thus filtered out).
	BranchOf []int

	// DisplayedCommits is commits with unassigned entries dropped.
	DisplayedCommits []*gitrepo.Commit

	// DisplayedBranchOf maps a DISPLAYED commit index to its owning branch.
	DisplayedBranchOf []int

	// IndexMap maps an original commit index to its displayed index, or -1
	// if the commit was filtered out.
	IndexMap []int
}

// Assign runs the back-trace algorithm below and returns
// the filtered, index-rewritten result.
func Assign(branches []*discovery.BranchInfo, commits []*gitrepo.Commit) *Result {
	order := make([]*discovery.BranchInfo, len(branches))
	copy(order, branches)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Persistence != b.Persistence {
			return a.Persistence < b.Persistence
		}
		if a.HeadIndex != b.HeadIndex {
			return a.HeadIndex < b.HeadIndex // newest head wins first
		}
		return a.Name < b.Name // deterministic tie-break
	})

	n := len(commits)
	branchOf := make([]int, n)
	for i := range branchOf {
		branchOf[i] = -1
	}

	// primaryParentIndex[i] is the commit index of commits[i]'s first
	// parent, or -1 if none / parent not present in this commit window.
	commitIndex := make(map[string]int, n)
	for i, c := range commits {
		commitIndex[c.Hash] = i
	}
	primaryParentIndex := make([]int, n)
	for i, c := range commits {
		primaryParentIndex[i] = -1
		if len(c.Parents) > 0 {
			if p, ok := commitIndex[c.Parents[0]]; ok {
				primaryParentIndex[i] = p
			}
		}
	}

	branchIndex := make(map[*discovery.BranchInfo]int, len(branches))
	for i, b := range branches {
		branchIndex[b] = i
	}

	for _, b := range order {
		if b.HeadIndex < 0 || b.HeadIndex >= n {
			continue
		}
		if branchOf[b.HeadIndex] != -1 {
			// head already claimed by a more persistent/newer branch: this
			// branch assigns no commits but is retained for rendering of
			// merge targets.
			b.IsMerged = true
			b.Range = nil
			continue
		}

		self := branchIndex[b]
		cur := b.HeadIndex
		last := cur
		for cur != -1 && branchOf[cur] == -1 {
			branchOf[cur] = self
			last = cur
			cur = primaryParentIndex[cur]
		}
		b.Range = &discovery.Range{Start: b.HeadIndex, End: last}
	}

	resolveForkTargetGroups(branches, branchOf)

	indexMap := make([]int, n)
	var displayed []*gitrepo.Commit
	displayedBranchOf := make([]int, 0, n)
	for i, c := range commits {
		if branchOf[i] == -1 {
			indexMap[i] = -1
			continue
		}
		indexMap[i] = len(displayed)
		displayed = append(displayed, c)
		displayedBranchOf = append(displayedBranchOf, branchOf[i])
	}

	rewriteRanges(branches, indexMap)

	return &Result{
		Branches:          branches,
		BranchOf:          branchOf,
		DisplayedCommits:  displayed,
		DisplayedBranchOf: displayedBranchOf,
		IndexMap:          indexMap,
	}
}

// resolveForkTargetGroups fills in TargetOrderGroup for fork branches whose
// merge summary omitted "into Y": the target is whichever branch ended up
// owning the merge commit.
func resolveForkTargetGroups(branches []*discovery.BranchInfo, branchOf []int) {
	for _, b := range branches {
		if b.ForkMergeIndex < 0 {
			continue
		}
		if b.ForkMergeIndex >= len(branchOf) {
			continue
		}
		owner := branchOf[b.ForkMergeIndex]
		if owner >= 0 && owner < len(branches) {
			b.TargetOrderGroup = branches[owner].Visual.OrderGroup
		}
	}
}

// rewriteRanges maps every branch's Range through indexMap. A branch whose
// head or oldest commit was filtered out (shouldn't happen: heads are always
// assigned to themselves unless pre-claimed, in which case Range is already
// nil) has its Range set to nil.
func rewriteRanges(branches []*discovery.BranchInfo, indexMap []int) {
	for _, b := range branches {
		if b.Range == nil {
			continue
		}
		start := indexMap[b.Range.Start]
		end := indexMap[b.Range.End]
		if start == -1 || end == -1 {
			b.Range = nil
			continue
		}
		b.Range = &discovery.Range{Start: start, End: end}
	}
}
