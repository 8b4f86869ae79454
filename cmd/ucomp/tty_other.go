//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package main

import (
	"os"
)

// isTerminal always returns false, as terminals can not be detected.
func isTerminal(file *os.File) bool {
	return false
}
