package snapshot

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates that the scan root does not exist or is not
// a directory. Callers can check for it with errors.Is.
var ErrInvalidPath = errors.New("mdiff: scan root is not a readable directory")

// Warning records a path that was skipped during scanning because it
// could not be read. Warnings are non-fatal; the scan continues.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped %s: %v", w.Path, w.Err)
}
