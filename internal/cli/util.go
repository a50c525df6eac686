package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/yildizm/pitchdeck/internal/deck"
)

// isTerminal reports whether stdout is a TTY
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// isInteractive returns true when both stdin and stdout are TTYs. The
// presenter needs both to read keys and own the screen.
func isInteractive() bool {
	return isTerminal() &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// loadDeck reads the deck at path, or the built-in deck when path is empty
func loadDeck(path string) (*deck.Deck, error) {
	if path == "" {
		return deck.Default()
	}
	d, err := deck.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	return d, nil
}

// writeOutput writes to filePath, or to w when filePath is empty
func writeOutput(w io.Writer, output []byte, filePath string) error {
	if filePath == "" {
		_, err := w.Write(output)
		return err
	}

	cleanPath := filepath.Clean(filePath)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed: %s", filePath)
	}
	if err := os.WriteFile(cleanPath, output, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cleanPath, err)
	}
	return nil
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
