package git

import (
	"strings"

	"github.com/go-git/go-git/v5"
)

// HeadInfo describes the commit HEAD points at
type HeadInfo struct {
	// Hash is the short commit hash (7 characters)
	Hash string
	// Branch is the short branch name, or "HEAD" when detached
	Branch string
	// Subject is the first line of the commit message
	Subject string
}

// Head reads the current HEAD commit of the repository at root
func Head(root string) (*HeadInfo, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, err
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, err
	}

	branch := "HEAD"
	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}

	return &HeadInfo{
		Hash:    ref.Hash().String()[:7],
		Branch:  branch,
		Subject: strings.Split(commit.Message, "\n")[0],
	}, nil
}
