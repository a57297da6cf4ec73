package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeahyeah/yeahyeah/internal/atomicfile"
)

// PersistenceError reports a settings file that could not be encoded or decoded.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error trying to use contents of %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// JSONFile is a JSON-encoded settings file owned by a single plugin.
type JSONFile struct {
	Path string
}

// Exists reports whether the file is present.
func (f JSONFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// Load decodes the file into v. A missing file is returned as an
// os.ErrNotExist error; undecodable content as a *PersistenceError.
func (f JSONFile) Load(v any) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &PersistenceError{Path: f.Path, Err: err}
	}
	return nil
}

// Save encodes v and replaces the file atomically.
func (f JSONFile) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &PersistenceError{Path: f.Path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return atomicfile.WriteFile(f.Path, append(data, '\n'), 0o600)
}

// Ensure writes defaults when the file does not exist yet and reports
// whether it did so.
func (f JSONFile) Ensure(defaults any) (created bool, err error) {
	if f.Exists() {
		return false, nil
	}
	if err := f.Save(defaults); err != nil {
		return false, err
	}
	return true, nil
}
