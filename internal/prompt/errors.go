package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAborted reports that the operator declined a confirmation prompt.
// Commands map it to a dedicated exit code, distinct from failures.
var ErrAborted = errors.New("aborted by user")

// InvalidInputError reports a value that failed enum validation, either
// supplied explicitly or typed at a prompt.
type InvalidInputError struct {
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected one of [%s]",
		e.Name, e.Value, strings.Join(e.Allowed, ", "))
}
