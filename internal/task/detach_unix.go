//go:build !windows

package task

import (
	"os/exec"
	"syscall"
)

// detach puts the worker in its own session so it survives the launcher
// exiting and ignores the launcher's terminal signals.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
