package sysinfo

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// loads are fixed point with 16 fractional bits
const loadScale = 1 << 16

func read() (Info, error) {
	var raw unix.Sysinfo_t
	if err := unix.Sysinfo(&raw); err != nil {
		return Info{}, fmt.Errorf("sysinfo: %w", err)
	}
	var info Info
	for i, load := range raw.Loads {
		info.Loads[i] = float64(load) / loadScale
	}
	info.Uptime = time.Duration(raw.Uptime) * time.Second
	return info, nil
}
