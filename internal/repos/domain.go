package repos

import "time"

// CommitEntry is a single entry of a commit log.
type CommitEntry struct {
	Author  string    // Author display name
	Date    time.Time // Commit time, UTC
	Message string    // Subject line
}

// StatusSnapshot is the working-tree status of a repository.
//
// Every field holds slash-separated paths relative to the repository root, sorted.
// A path may be listed in more than one category, e.g. a file with staged changes
// and further unstaged edits is both changed and modified.
type StatusSnapshot struct {
	Added     []string // new paths staged for the next commit
	Changed   []string // tracked paths staged with changes relative to HEAD
	Missing   []string // tracked paths deleted from the working tree, not staged
	Modified  []string // tracked paths modified in the working tree, not staged
	Removed   []string // tracked paths staged for removal
	Untracked []string // paths neither tracked nor ignored
}

// IsClean reports whether the snapshot holds no paths at all.
func (s StatusSnapshot) IsClean() bool {
	return len(s.Added) == 0 &&
		len(s.Changed) == 0 &&
		len(s.Missing) == 0 &&
		len(s.Modified) == 0 &&
		len(s.Removed) == 0 &&
		len(s.Untracked) == 0
}
