//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Configure starts cmd in its own process group and makes context
// cancellation kill the whole group, so converter helpers spawned by the
// command do not outlive it.
func Configure(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; exec.Cmd.Wait reports the exit status.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
