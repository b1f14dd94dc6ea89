//go:build windows

package launch

import "syscall"

const detachedProcess = 0x00000008

// detachedProcAttr starts the child without a console and outside the
// installer's process group.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: detachedProcess | syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
