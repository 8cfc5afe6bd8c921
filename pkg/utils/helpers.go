package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if entries, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

//EnsureDir creates given directory (and parents) if missing
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0766); err != nil {
		return fmt.Errorf("EnsureDir: Error creating '%s', got '%v'", path, err)
	}
	return nil
}

//SweepDir removes files in dir whose name starts with prefix and that were not modified for olderThan.
//Returns the removed names.
func SweepDir(dir, prefix string, olderThan time.Duration) ([]string, error) {
	names, err := ListDir(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0)
	deadline := time.Now().Add(-olderThan)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.ModTime().After(deadline) {
			continue
		}

		if err := os.Remove(path); err != nil {
			Logf("SweepDir: Could not remove '%s', got '%v'", path, err)
			continue
		}
		removed = append(removed, name)
	}

	return removed, nil
}
