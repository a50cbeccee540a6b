// Package atomicfile writes files through a temp-file-and-rename step so a
// crash mid-write never leaves a half-written file behind.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically: the bytes go to a temporary file
// in the same directory, are synced, and the temp file is renamed into place.
// Missing parent directories are created. An existing file at path keeps its
// mode; otherwise the file is created 0644.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp, path, data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := replace(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// fill writes data through tmp, carrying over the destination's mode when it
// already exists, 0644 otherwise.
func fill(tmp *os.File, dst string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(dst); err == nil {
		mode = st.Mode()
	}
	// Chmod can fail on filesystems without permission bits; the write still
	// lands, so ignore it.
	_ = tmp.Chmod(mode)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	return nil
}

// replace renames tmpPath onto dst. Windows refuses to rename over an
// existing file; drop the target and retry once (the retry is not atomic).
func replace(tmpPath, dst string) error {
	err := os.Rename(tmpPath, dst)
	if err == nil {
		return nil
	}
	_ = os.Remove(dst)
	if os.Rename(tmpPath, dst) == nil {
		return nil
	}
	return fmt.Errorf("rename temp file: %w", err)
}
