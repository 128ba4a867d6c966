package score

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a note table from a .yaml/.yml/.json table or score, or a
// .mid/.midi file. Tables without a name are named after the file.
func Load(path string) (*Table, error) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	var t *Table
	switch ext {
	case ".mid", ".midi":
		s, err := ReadSMF(path)
		if err != nil {
			return nil, err
		}
		t, err = FromSMF(name, s)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", path, err)
		}
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read note table: %w", err)
		}
		t, err = ParseTable(data)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("don't know how to read %v files", ext)
	}

	if t.Name == "" {
		t.Name = name
	}
	return t, nil
}

func Save(path string, t *Table) error {
	data, err := t.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write note table: %w", err)
	}
	return nil
}
