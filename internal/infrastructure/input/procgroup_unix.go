//go:build !windows

package input

import (
	"os/exec"
	"syscall"
)

// isolateProcessGroup starts cmd in its own process group and makes context
// cancellation kill the whole group, so background children cannot hold the
// output pipes open.
func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// With Setpgid the child's pid is also its group id.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
