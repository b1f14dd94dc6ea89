//go:build !windows

package launch

import "syscall"

// detachedProcAttr starts the child in its own session so it survives the
// installer exiting.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
