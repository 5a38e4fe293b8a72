// Package gitinfo resolves revision metadata for the input tree.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// HeadCommit returns the HEAD commit hash of the repository containing dir.
// Returns an error when dir is not inside a git repository; callers treat
// that as "no revision to stamp", not a failure.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}
