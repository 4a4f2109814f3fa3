//go:build unix

package git

import (
	"os/exec"
	"syscall"
)

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Negative pid signals every process in the group
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
