package plugin

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yeahyeah/yeahyeah/internal/atomicfile"
	"github.com/yeahyeah/yeahyeah/internal/menu"
)

// ItemStore is the YAML file behind a list-backed plugin.
type ItemStore struct {
	Path     string
	Variants []menu.Variant
	// Defaults builds the example content written when Path does not exist.
	Defaults func() []menu.Serialisable
}

// Open loads the store. A missing file is first created from Defaults and
// created is true; that is not an error.
func (s *ItemStore) Open() (list *menu.List, created bool, err error) {
	if _, statErr := os.Stat(s.Path); errors.Is(statErr, fs.ErrNotExist) {
		var defaults []menu.Serialisable
		if s.Defaults != nil {
			defaults = s.Defaults()
		}
		if err := s.Save(menu.NewList(s.Variants, defaults...)); err != nil {
			return nil, false, err
		}
		created = true
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, created, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	list, err = menu.Load(f, s.Variants)
	if err != nil {
		return nil, created, fmt.Errorf("failed to load %s: %w", s.Path, err)
	}
	return list, created, nil
}

// Save replaces the store with list.
func (s *ItemStore) Save(list *menu.List) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	err := atomicfile.Write(s.Path, 0o644, func(w io.Writer) error {
		return list.Save(w)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
