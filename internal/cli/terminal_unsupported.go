//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import "os"

func IsTerminal(_ *os.File) bool {
	return false
}
