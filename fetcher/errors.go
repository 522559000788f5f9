package fetcher

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an asset the server does not have (HTTP 404), as opposed to
// a transport or server failure.
var ErrNotFound = errors.New("not found")

// Error describes a failed remote fetch.
type Error struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the asset host.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
