//go:build windows

package input

import "os/exec"

// isolateProcessGroup keeps the default cancellation on Windows, where
// process groups are not available through SysProcAttr.
func isolateProcessGroup(*exec.Cmd) {}
