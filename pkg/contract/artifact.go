package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Artifact is the single generated source file. Every Write replaces the
// previous content; there is no history.
type Artifact struct {
	Dir      string
	Filename string
}

func (a Artifact) Path() string { return filepath.Join(a.Dir, a.Filename) }

// Write creates the directory if needed, removes any prior artifact and
// writes source as the new one. It returns the artifact path.
func (a Artifact) Write(source string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create contracts dir: %w", err)
	}
	path := a.Path()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("remove old artifact: %w", err)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

func (a Artifact) Read() (string, error) {
	b, err := os.ReadFile(a.Path())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
