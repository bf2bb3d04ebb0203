package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
)

// SQLite writes these next to the database file depending on journal mode.
var sqliteSidecars = []string{"-wal", "-shm", "-journal"}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// RemoveDatabaseFiles deletes a SQLite database and its journal sidecars.
// Files that do not exist are ignored.
func RemoveDatabaseFiles(path string) error {
	paths := []string{path}
	for _, suffix := range sqliteSidecars {
		paths = append(paths, path+suffix)
	}

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}

	return nil
}

// FormatBytes renders a byte count for humans, e.g. "12 MB"
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatCount renders a count with thousands separators, e.g. "10,001"
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
