package gitversion

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sig = &object.Signature{Name: "docs", Email: "docs@example.com", When: time.Unix(1700000000, 0)}

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	n    int
}

func newRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) commit() plumbing.Hash {
	r.t.Helper()
	r.n++
	name := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(name, []byte(strconv.Itoa(r.n)), 0644))
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)
	hash, err := wt.Commit("commit", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash, annotated bool) {
	r.t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{Tagger: sig, Message: name}
	}
	_, err := r.repo.CreateTag(name, hash, opts)
	require.NoError(r.t, err)
}

func TestVersion_NotARepo(t *testing.T) {
	assert.Equal(t, Unknown, Version(t.TempDir()))
}

func TestVersion_NoTags(t *testing.T) {
	r := newRepo(t)
	hash := r.commit()
	assert.Equal(t, "dev-"+hash.String()[:7], Version(r.dir))

	_, err := Describe(r.dir)
	assert.ErrorIs(t, err, ErrNoTag)
}

func TestDescribe_NearestTag(t *testing.T) {
	r := newRepo(t)
	first := r.commit()
	r.tag("v0.2.16", first, false)
	second := r.commit()
	r.tag("v0.2.17", second, true)
	r.commit()

	tag, err := Describe(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.17", tag)
	assert.Equal(t, "0.2.17", Version(r.dir))
}

func TestDescribe_HighestTagOnSameCommit(t *testing.T) {
	r := newRepo(t)
	hash := r.commit()
	r.tag("v0.2.9", hash, false)
	r.tag("v0.2.10", hash, false)
	r.tag("nightly", hash, false)

	tag, err := Describe(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.10", tag)
}

func TestVersion_FromSubdirectory(t *testing.T) {
	r := newRepo(t)
	r.tag("v1.0.0", r.commit(), true)
	sub := filepath.Join(r.dir, "docs", "source")
	require.NoError(t, os.MkdirAll(sub, 0755))
	assert.Equal(t, "1.0.0", Version(sub))
}
