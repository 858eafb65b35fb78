package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptString asks for a single value on stdin, offering a default. An
// empty answer takes the default.
func promptString(r *bufio.Reader, w io.Writer, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptList asks for a comma-separated list of values.
func promptList(r *bufio.Reader, w io.Writer, label string) ([]string, error) {
	raw, err := promptString(r, w, label+" (comma-separated)", "")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items, nil
}
