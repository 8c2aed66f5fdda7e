package repos

import "errors"

var (
	ErrConfiguration  = errors.New("invalid configuration")
	ErrNotARepository = errors.New("not a git repository")
	ErrIO             = errors.New("filesystem error")
	ErrVCS            = errors.New("git error")
)
