package blocks

import (
	"errors"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// killGroupOnCancel runs cmd in its own process group and kills the whole
// group when the context ends, children of the shell included.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &unix.SysProcAttr{
		Setpgid: true,
	}
	cmd.Cancel = func() error {
		err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
		if errors.Is(err, unix.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
