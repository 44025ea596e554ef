package question

import (
	"errors"
	"fmt"
)

var ErrEmptySource = errors.New("question source is empty")

// LoadError is the only failure that crosses out of the loader. StatusCode
// is the HTTP status for remote sources, 404 for a missing local file and 0
// for transport or read failures.
type LoadError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("load questions from %s: status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

// SourceUnavailable hides the cause from users.
func (e *LoadError) SourceUnavailable() string {
	return LoadFailedMessage
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError unwraps err into a *LoadError.
func IsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
