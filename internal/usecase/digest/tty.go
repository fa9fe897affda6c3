package digest

import "golang.org/x/term"

// IsTTY checks if the given file descriptor is a terminal. The format command
// uses this to refuse blocking on an interactive stdin when no payload file
// is given.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}
