package submission

import "errors"

// ErrNotFound indicates no submission exists under the given id.
var ErrNotFound = errors.New("submission not found")
