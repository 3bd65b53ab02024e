package gitrepo

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

func commitFile(t *testing.T, repo *git.Repository, name, content, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	f, err := wt.Filesystem.Create(name)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	_, err = wt.Add(name)
	require.NoError(t, err)
	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return hash
}

func TestOpenFindsEnclosingRepository(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	commitFile(t, gitRepo, "a.txt", "a", "initial")

	r, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Path())
}

func TestOpenFailsOutsideAnyRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestListRefsSeparatesTiersAndSortsAlphabetically(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	head := commitFile(t, gitRepo, "a.txt", "a", "initial")

	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/heads/zzz", head)))
	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/heads/aaa", head)))
	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/remotes/origin/main", head)))
	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/tags/v1.0", head)))

	r, err := Open(dir)
	require.NoError(t, err)

	refs, err := r.ListRefs(true)
	require.NoError(t, err)

	var locals, remotes, tags []string
	for _, ref := range refs {
		switch ref.Kind {
		case RefBranchLocal:
			locals = append(locals, ref.Name)
		case RefBranchRemote:
			remotes = append(remotes, ref.Name)
		case RefTag:
			tags = append(tags, ref.Name)
		}
	}
	assert.Contains(t, locals, "aaa")
	assert.Contains(t, locals, "zzz")
	assert.Less(t, indexOf(locals, "aaa"), indexOf(locals, "zzz"))
	assert.Contains(t, remotes, "origin/main")
	assert.Contains(t, tags, "v1.0")
}

func TestListRefsExcludesRemotesWhenNotRequested(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	head := commitFile(t, gitRepo, "a.txt", "a", "initial")
	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/remotes/origin/main", head)))

	r, err := Open(dir)
	require.NoError(t, err)

	refs, err := r.ListRefs(false)
	require.NoError(t, err)
	for _, ref := range refs {
		assert.NotEqual(t, RefBranchRemote, ref.Kind)
	}
}

func TestGetCommitsOrdersNewestFirstWithParentsAndRefs(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	first := commitFile(t, gitRepo, "a.txt", "a", "first")
	second := commitFile(t, gitRepo, "b.txt", "b", "second")
	require.NoError(t, gitRepo.Storer.SetReference(plumbing.NewHashReference("refs/tags/v1.0", second)))

	r, err := Open(dir)
	require.NoError(t, err)

	commits, err := r.GetCommits(0)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, second.String(), commits[0].Hash)
	assert.Equal(t, first.String(), commits[1].Hash)
	assert.Equal(t, []string{first.String()}, commits[0].Parents)
	assert.Empty(t, commits[1].Parents)

	var sawTag bool
	for _, ref := range commits[0].Refs {
		if ref.Kind == RefTag && ref.Name == "v1.0" {
			sawTag = true
		}
	}
	assert.True(t, sawTag)
}

func TestGetCommitsRespectsLimit(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	commitFile(t, gitRepo, "a.txt", "a", "first")
	commitFile(t, gitRepo, "b.txt", "b", "second")
	commitFile(t, gitRepo, "c.txt", "c", "third")

	r, err := Open(dir)
	require.NoError(t, err)

	commits, err := r.GetCommits(2)
	require.NoError(t, err)
	assert.Len(t, commits, 2)
}

func TestHeadNameReturnsCurrentBranch(t *testing.T) {
	gitRepo, dir := newTestRepo(t)
	commitFile(t, gitRepo, "a.txt", "a", "initial")

	r, err := Open(dir)
	require.NoError(t, err)

	name := r.HeadName()
	assert.True(t, name == "master" || name == "main")
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
