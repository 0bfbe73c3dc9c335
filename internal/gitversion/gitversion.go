// Package gitversion derives the documentation release string from git tags.
package gitversion

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"golang.org/x/mod/semver"
)

// Unknown is reported when dir is not inside a git repository.
const Unknown = "unknown"

// ErrNoTag means no tag is reachable from HEAD.
var ErrNoTag = errors.New("no tag reachable from HEAD")

func open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

// Describe returns the tag nearest to HEAD, walking history breadth-first.
// When one commit carries several tags the highest semver wins.
func Describe(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}

	tagged, err := tagsByCommit(repo)
	if err != nil {
		return "", err
	}
	if len(tagged) == 0 {
		return "", ErrNoTag
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderBSF})
	if err != nil {
		return "", err
	}
	defer commits.Close()

	var found string
	err = commits.ForEach(func(c *object.Commit) error {
		if names, ok := tagged[c.Hash]; ok {
			found = highest(names)
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrNoTag
	}
	return found, nil
}

func tagsByCommit(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	out := make(map[plumbing.Hash][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				// tag of a tree or blob
				return nil
			}
			hash = commit.Hash
		}
		out[hash] = append(out[hash], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return out, nil
}

func highest(names []string) string {
	slices.SortFunc(names, func(a, b string) int {
		if c := semver.Compare(b, a); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names[0]
}

// ShortHead returns the abbreviated hash of HEAD.
func ShortHead(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String()[:7], nil
}

// Version returns the release string used for the docs build: the nearest
// tag without its leading "v", else dev-<short hash>, else "unknown".
func Version(dir string) string {
	if tag, err := Describe(dir); err == nil {
		return strings.TrimLeft(tag, "v")
	}
	if hash, err := ShortHead(dir); err == nil {
		return "dev-" + hash
	}
	return Unknown
}
