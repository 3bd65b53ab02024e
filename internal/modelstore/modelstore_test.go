package modelstore

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *git.Repository {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	return repo
}

func TestGetReturnsEmptyWhenUnset(t *testing.T) {
	repo := newTestRepo(t)
	name, err := Get(repo)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestSetThenGetRoundTrips(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, Set(repo, "git-flow"))

	name, err := Get(repo)
	require.NoError(t, err)
	assert.Equal(t, "git-flow", name)
}

func TestSetOverwritesPreviousValue(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, Set(repo, "git-flow"))
	require.NoError(t, Set(repo, "simple"))

	name, err := Get(repo)
	require.NoError(t, err)
	assert.Equal(t, "simple", name)
}
