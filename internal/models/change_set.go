package models

import "strings"

// ChangeSet holds the pending diffs of a working tree
type ChangeSet struct {
	// Staged is the output of `git diff --cached`
	Staged string
	// Unstaged is the output of `git diff`
	Unstaged string
}

// NewChangeSet creates a ChangeSet with both diffs trimmed of surrounding whitespace
func NewChangeSet(staged, unstaged string) ChangeSet {
	return ChangeSet{
		Staged:   strings.TrimSpace(staged),
		Unstaged: strings.TrimSpace(unstaged),
	}
}

// IsEmpty reports whether there is nothing staged and nothing unstaged
func (c ChangeSet) IsEmpty() bool {
	return c.Staged == "" && c.Unstaged == ""
}

// HasStaged reports whether the index differs from HEAD
func (c ChangeSet) HasStaged() bool {
	return c.Staged != ""
}

// Combined returns the staged diff followed by the unstaged diff
func (c ChangeSet) Combined() string {
	switch {
	case c.Staged == "":
		return c.Unstaged
	case c.Unstaged == "":
		return c.Staged
	default:
		return c.Staged + "\n" + c.Unstaged
	}
}
