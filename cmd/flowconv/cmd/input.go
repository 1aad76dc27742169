package cmd

import (
	"fmt"
	"io"
	"os"
)

// resolveSource reads program text for a subcommand: -e/--expr wins
// when set, "-" or no path reads stdin, anything else is a file path.
func resolveSource(path, inlineSource string) (source, file string, err error) {
	if inlineSource != "" {
		return inlineSource, "", nil
	}
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}
