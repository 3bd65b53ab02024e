// Package gitrepo is the narrow repository-adapter capability consumed by
// the graph pipeline: locate a repository, enumerate refs, and
// stream commits in a deterministic topological order. It is deliberately
// thin — the hard graph-construction logic lives upstream of this package.
package gitrepo

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/yourusername/ggraph/internal/ggraphErr"
)

// Signature is a person/timestamp pair shared by author and committer.
type Signature struct {
	Name   string
	Email  string
	When   time.Time
	Offset string // e.g. "+0200", preserved verbatim for %ad/%cd formatting
}

// Commit is an immutable record identified by a 40-hex object ID.
type Commit struct {
	Hash      string
	ShortHash string
	Author    Signature
	Committer Signature
	Summary   string
	Body      string
	// Parents is the ordered parent ID list; Parents[0] is the primary parent.
	Parents []string
	Refs    []Ref
}

// RefKind distinguishes the three ref tiers discovery visits in stable
// alphabetical-within-tier order.
type RefKind int

const (
	RefBranchLocal RefKind = iota
	RefBranchRemote
	RefTag
)

// Ref is a named pointer at a commit, as returned by ListRefs.
type Ref struct {
	Name string // short display name, e.g. "develop", "origin/develop", "v1.0"
	Kind RefKind
	Head string // commit object ID this ref points at (after peeling tags)
}

// Repository wraps a Git object store for the operations the pipeline
// needs: ref enumeration and commit streaming.
type Repository struct {
	repo *git.Repository
	path string
}

// Open locates the repository enclosing path (searching upward, the way
// `git` itself does) and returns a handle to it.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindRepositoryNotFound, err, "opening repository at "+path)
	}
	wt, wtErr := repo.Worktree()
	root := path
	if wtErr == nil && wt.Filesystem != nil {
		root = wt.Filesystem.Root()
	}
	return &Repository{repo: repo, path: root}, nil
}

// Path returns the filesystem root of the repository's worktree.
func (r *Repository) Path() string { return r.path }

// GoGit exposes the underlying go-git handle for internal/modelstore, which
// needs to read and write the repository's local config.
func (r *Repository) GoGit() *git.Repository { return r.repo }

// ListRefs enumerates local branches, remote branches (only when
// includeRemote is true) and tags with their peeled object IDs, in stable
// alphabetical-within-tier order. Refs pointing at non-commit objects are
// silently skipped.
func (r *Repository) ListRefs(includeRemote bool) ([]Ref, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "listing references")
	}

	var locals, remotes, tags []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		head, ok := r.peelToCommit(ref)
		if !ok {
			return nil
		}
		switch {
		case name.IsBranch():
			locals = append(locals, Ref{Name: name.Short(), Kind: RefBranchLocal, Head: head})
		case name.IsRemote():
			if includeRemote {
				remotes = append(remotes, Ref{Name: name.Short(), Kind: RefBranchRemote, Head: head})
			}
		case name.IsTag():
			tags = append(tags, Ref{Name: name.Short(), Kind: RefTag, Head: head})
		}
		return nil
	})
	if err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "walking references")
	}

	sortRefs(locals)
	sortRefs(remotes)
	sortRefs(tags)

	all := make([]Ref, 0, len(locals)+len(remotes)+len(tags))
	all = append(all, locals...)
	all = append(all, remotes...)
	all = append(all, tags...)
	return all, nil
}

func sortRefs(refs []Ref) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && refs[j-1].Name > refs[j].Name; j-- {
			refs[j-1], refs[j] = refs[j], refs[j-1]
		}
	}
}

// peelToCommit resolves a reference to the commit it ultimately points at
// (following annotated tags), returning ok=false for refs targeting
// non-commit objects.
func (r *Repository) peelToCommit(ref *plumbing.Reference) (string, bool) {
	obj, err := r.repo.Object(plumbing.AnyObject, ref.Hash())
	if err != nil {
		return "", false
	}
	for {
		switch o := obj.(type) {
		case *object.Commit:
			return o.Hash.String(), true
		case *object.Tag:
			next, err := o.Object()
			if err != nil {
				return "", false
			}
			obj = next
		default:
			return "", false
		}
	}
}

// GetCommits streams up to limit commits reachable from any ref, newest
// first, in topological order. It shells out to `git log --all --topo-order`
// rather than using go-git's own commit walker: go-git's walkers do not
// reproduce multi-ref topological order faithfully across merges.
func (r *Repository) GetCommits(limit int) ([]*Commit, error) {
	const unitSep = "\x1f"
	const recordSep = "\x1e"
	format := strings.Join([]string{
		"%H", "%P", "%an", "%ae", "%ad", "%cn", "%ce", "%cd", "%s", "%B",
	}, unitSep) + recordSep

	args := []string{
		"-C", r.path,
		"log", "--all", "--topo-order", "--date=iso-strict",
		"--format=" + format,
	}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-%d", limit))
	}

	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindGitAccess, err, "git log")
	}

	refMap, err := r.buildRefMapByHash()
	if err != nil {
		return nil, err
	}

	records := strings.Split(string(out), recordSep)
	commits := make([]*Commit, 0, len(records))
	for _, rec := range records {
		rec = strings.TrimPrefix(rec, "\n")
		if strings.TrimSpace(rec) == "" {
			continue
		}
		parts := strings.SplitN(rec, unitSep, 10)
		if len(parts) < 10 {
			continue
		}

		hash := parts[0]
		var parents []string
		if strings.TrimSpace(parts[1]) != "" {
			parents = strings.Fields(parts[1])
		}
		authorWhen, authorOffset := parseISODate(parts[4])
		committerWhen, committerOffset := parseISODate(parts[7])
		body := strings.TrimSuffix(parts[9], "\n")
		summary := parts[8]

		shortHash := hash
		if len(hash) >= 7 {
			shortHash = hash[:7]
		}

		commits = append(commits, &Commit{
			Hash:      hash,
			ShortHash: shortHash,
			Author:    Signature{Name: parts[2], Email: parts[3], When: authorWhen, Offset: authorOffset},
			Committer: Signature{Name: parts[5], Email: parts[6], When: committerWhen, Offset: committerOffset},
			Summary:   summary,
			Body:      body,
			Parents:   parents,
			Refs:      refMap[hash],
		})
	}

	return commits, nil
}

func parseISODate(s string) (time.Time, string) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ""
	}
	offset := "+0000"
	if idx := strings.LastIndexAny(s, "+-"); idx > 10 {
		raw := strings.ReplaceAll(s[idx:], ":", "")
		offset = raw
	}
	return t, offset
}

func (r *Repository) buildRefMapByHash() (map[string][]Ref, error) {
	refs, err := r.ListRefs(true)
	if err != nil {
		return nil, err
	}
	m := make(map[string][]Ref)
	for _, ref := range refs {
		m[ref.Head] = append(m[ref.Head], ref)
	}
	return m, nil
}

// HeadName returns the short name of the currently checked-out branch, or
// "" when HEAD is detached.
func (r *Repository) HeadName() string {
	head, err := r.repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}
