package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrConfigExists is returned by WriteFile in WriteNew mode when the
// target already exists.
var ErrConfigExists = errors.New("config already exists")

// WriteMode says what WriteFile does with an existing file.
type WriteMode int

const (
	// WriteNew refuses to touch an existing file.
	WriteNew WriteMode = iota
	// WriteOverwrite replaces the file with the defaults.
	WriteOverwrite
	// WriteUpdate merges missing defaults into the file with UpdateTOML.
	WriteUpdate
)

// WriteResult describes what WriteFile did.
type WriteResult struct {
	Path string
	// Backup holds the previous contents; empty when nothing was replaced.
	Backup string
	// UpToDate is set when WriteUpdate found nothing to merge and left the
	// file alone.
	UpToDate bool
}

// WriteFile writes a config file at path. An existing file is copied to
// path.bak (or a timestamped name when that is taken) before it changes.
func WriteFile(path string, mode WriteMode, now time.Time) (WriteResult, error) {
	res := WriteResult{Path: path}
	old, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("read config: %w", err)
	}

	content := RenderDefaultTOML()
	switch {
	case !exists:
	case mode == WriteNew:
		return res, fmt.Errorf("%w at %s", ErrConfigExists, path)
	case mode == WriteUpdate:
		updated, changed := UpdateTOML(string(old))
		if !changed {
			res.UpToDate = true
			return res, nil
		}
		content = updated
	}

	if exists {
		res.Backup = backupName(path, now)
		if err := os.WriteFile(res.Backup, old, 0o600); err != nil {
			return res, fmt.Errorf("backup config: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return res, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return res, fmt.Errorf("write config: %w", err)
	}
	return res, nil
}

func backupName(path string, now time.Time) string {
	name := path + ".bak"
	if _, err := os.Stat(name); err == nil {
		name = path + ".bak-" + now.Format("20060102-150405")
	}
	return name
}
