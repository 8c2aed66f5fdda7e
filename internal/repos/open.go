package repos

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v6"
)

// openRepository opens the working copy at path. The returned release func
// closes the underlying storage and must be called on every exit path.
func openRepository(path string) (*git.Repository, func() error, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open repository: %w", ErrVCS, err)
	}

	release := func() error {
		closer, ok := repo.Storer.(io.Closer)
		if !ok {
			return nil
		}
		if closeErr := closer.Close(); closeErr != nil {
			return fmt.Errorf("%w: failed to close repository: %w", ErrVCS, closeErr)
		}
		return nil
	}

	return repo, release, nil
}
