package git

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
)

// ErrNotRepository indicates the invocation directory is not inside a git work tree
var ErrNotRepository = errors.New("not a git repository (or any of the parent directories)")

// IsGitRepo checks if the path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := FindRoot(path)
	return err == nil
}

// FindRoot walks up from path to the root of the enclosing work tree
func FindRoot(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", processError("rev-parse", ErrNotRepository.Error())
		}
		return "", processError("rev-parse", err.Error())
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to commit from
		return "", processError("rev-parse", err.Error())
	}

	return wt.Filesystem.Root(), nil
}

// FindCurrentRoot finds the work tree root for the current working directory
func FindCurrentRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", processError("rev-parse", err.Error())
	}
	return FindRoot(cwd)
}
