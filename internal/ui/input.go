package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the prompt reaches end of input without an
// answer.
var ErrNoInput = errors.New("no input")

// Prompt prints label and reads one trimmed line from in.
func Prompt(in io.Reader, out io.Writer, label string) (string, error) {
	cyan.Fprintf(out, "    %s\n", label)
	green.Fprint(out, "    → ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	if line == "" {
		return "", ErrNoInput
	}
	return line, nil
}
