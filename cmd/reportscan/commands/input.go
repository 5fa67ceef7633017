package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// stdinArg selects standard input explicitly.
const stdinArg = "-"

var (
	// ErrDirectoryPath indicates an input path points to a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
)

// openInput opens the named file, or the command's stdin when path is
// empty or "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if isStdin(path) {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	resolved, err := resolveInputPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", resolved, err)
	}

	return file, nil
}

// isStdin reports whether path selects standard input.
func isStdin(path string) bool {
	trimmed := strings.TrimSpace(path)

	return trimmed == "" || trimmed == stdinArg
}

func resolveInputPath(path string) (string, error) {
	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryPath, absPath)
	}

	return absPath, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
