package util

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal checks if the given file descriptor is a terminal
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// ProgressEnabled reports whether stage progress bars should be drawn.
// Bars go to stderr, so that is the stream checked.
func ProgressEnabled() bool {
	return IsTerminal(os.Stderr.Fd()) && !IsQuiet()
}
