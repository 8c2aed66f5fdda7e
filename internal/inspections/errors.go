package inspections

import "errors"

var ErrNotFound = errors.New("snapshot not found")
