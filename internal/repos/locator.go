package repos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MetadataDir is the directory that marks a working copy.
const MetadataDir = ".git"

// Locator resolves repository names against a base directory.
//
// Only immediate children of the base directory are considered, nested
// working copies further down the tree are ignored.
type Locator struct {
	basePath string
}

// NewLocator validates basePath and returns a Locator rooted at it.
func NewLocator(basePath string) (*Locator, error) {
	trimmed := strings.TrimSpace(basePath)

	info, err := os.Stat(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: base path %s is not a directory: %w", ErrConfiguration, trimmed, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: base path %s is not a directory", ErrConfiguration, trimmed)
	}

	return &Locator{basePath: trimmed}, nil
}

// BasePath returns the configured base directory.
func (l *Locator) BasePath() string {
	return l.basePath
}

// List returns the names of the immediate children that are git working copies.
func (l *Locator) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrIO, l.basePath, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		// symlinks are followed by Resolve, plain files never qualify
		if !entry.IsDir() && entry.Type()&fs.ModeSymlink == 0 {
			continue
		}

		_, resolveErr := l.Resolve(entry.Name())
		switch {
		case resolveErr == nil:
			names = append(names, entry.Name())
		case errors.Is(resolveErr, ErrNotARepository):
			continue
		default:
			return nil, resolveErr
		}
	}

	slices.Sort(names)

	return names, nil
}

// Resolve returns the path of the working copy called name.
//
// It fails with ErrNotARepository unless name is a plain child name, the child is a
// directory inside the base directory, and it contains a .git directory.
func (l *Locator) Resolve(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	repoPath := filepath.Join(l.basePath, name)

	ok, err := isDir(repoPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", notARepository(name)
	}

	inside, err := l.contains(repoPath)
	if err != nil {
		return "", err
	}
	if !inside {
		return "", fmt.Errorf("%w: %q resolves outside of the base path", ErrNotARepository, name)
	}

	ok, err = isDir(filepath.Join(repoPath, MetadataDir))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", notARepository(name)
	}

	return repoPath, nil
}

// contains reports whether path, with symlinks evaluated, stays inside the base directory.
func (l *Locator) contains(path string) (bool, error) {
	base, err := filepath.EvalSymlinks(l.basePath)
	if err != nil {
		return false, fmt.Errorf("%w: failed to resolve %s: %w", ErrIO, l.basePath, err)
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, fmt.Errorf("%w: failed to resolve %s: %w", ErrIO, path, err)
	}

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false, nil //nolint:nilerr // different volumes
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: invalid repository name %q", ErrNotARepository, name)
	case strings.ContainsAny(name, `/\`+"\x00"), strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: invalid repository name %q", ErrNotARepository, name)
	}

	return nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to stat %s: %w", ErrIO, path, err)
	}

	return info.IsDir(), nil
}

func notARepository(name string) error {
	return fmt.Errorf("%w: %q", ErrNotARepository, name)
}
