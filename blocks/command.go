package blocks

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/reusee/taibar/syncs"
)

const DefaultShell = "sh"

// commandWaitDelay bounds how long a cancelled command may keep its output
// pipes open.
var commandWaitDelay = time.Second

// RunCommand runs command with the shell and returns its trimmed stdout.
// Commands from all blocks share one concurrency limit.
func (a *CommonApi) RunCommand(ctx context.Context, shell string, command string) (string, error) {
	if shell == "" {
		shell = DefaultShell
	}
	sem := a.commands()
	if err := sem.Acquire(ctx); err != nil {
		return "", err
	}
	defer sem.Release()

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	killGroupOnCancel(cmd)
	cmd.WaitDelay = commandWaitDelay
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %q: %w: %s", command, err, msg)
		}
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (a *CommonApi) commands() syncs.Semaphore {
	if a.Shared == nil {
		return nil
	}
	return a.Shared.Commands
}
