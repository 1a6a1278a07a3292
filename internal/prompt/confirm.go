package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmOptions holds options for the confirmation prompt.
type ConfirmOptions struct {
	// Question is the prompt to display to the operator.
	Question string

	// SkipPrompt skips the confirmation and returns true immediately.
	// Wired to -y/--yes flags.
	SkipPrompt bool

	// Input is the reader for user input (defaults to os.Stdin).
	Input io.Reader

	// Output is the writer for the prompt (defaults to os.Stdout).
	Output io.Writer
}

// Confirm asks a y/n question defaulting to "no". It returns true only
// for an affirmative answer; EOF and anything else count as refusal.
func Confirm(opts ConfirmOptions) (bool, error) {
	if opts.SkipPrompt {
		return true, nil
	}

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	fmt.Fprintf(output, "%s (y/N): ", opts.Question)

	// Reuse an existing buffer rather than wrapping again: the answer
	// may already sit in the prompt reader's look-ahead.
	reader, ok := input.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(input)
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			// EOF without input
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
