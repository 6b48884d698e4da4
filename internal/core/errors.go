package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing reports a source file that disappeared between scan
	// and execution. Recoverable: the file is skipped.
	ErrSourceMissing = errors.New("source file no longer exists")

	// ErrTargetExists reports a pre-existing file at the target path.
	// Never overwritten or merged; the move is refused.
	ErrTargetExists = errors.New("destination already exists")
)

// CopyVerifyError reports a failed cross-filesystem copy. The source is
// guaranteed untouched when this error is returned.
type CopyVerifyError struct {
	Source string
	Target string
	Detail string
}

func (e *CopyVerifyError) Error() string {
	return fmt.Sprintf("cross-filesystem copy of %s failed: %s", e.Source, e.Detail)
}
