//go:build windows

package main

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr starts the server without a console in a new process group
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
}
