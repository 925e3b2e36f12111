//go:build !linux

package sysinfo

import (
	"errors"
	"runtime"
)

func read() (Info, error) {
	return Info{}, errors.New("sysinfo is not supported on " + runtime.GOOS)
}
