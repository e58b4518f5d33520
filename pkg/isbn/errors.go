package isbn

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no ISBN can be recognized in the input text.
var ErrNotFound = errors.New("isbn: not found")

// InvalidError reports a value that looks like an ISBN but is malformed.
// Recognition does not currently produce it.
type InvalidError struct {
	Value string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("isbn: invalid value %q", e.Value)
}
