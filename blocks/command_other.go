//go:build !linux

package blocks

import "os/exec"

func killGroupOnCancel(cmd *exec.Cmd) {}
