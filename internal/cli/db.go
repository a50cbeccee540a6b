package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aidanlsb/magpie"
)

// openStore opens the resolved store database, creating the file and its
// parent directory on first use.
func openStore() (*magpie.Database, error) {
	path := getStorePath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	slog.Debug("opening store", "path", path)
	return magpie.Open(path)
}
