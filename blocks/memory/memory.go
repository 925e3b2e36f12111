// Package memory shows RAM usage from meminfo of the proc filesystem.
package memory

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/prometheus/procfs"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "memory"

//go:embed schema.cue
var Schema string

type Config struct {
	Interval          configs.Seconds `json:"interval"`
	Format            string          `json:"format"`
	WarningThreshold  float64         `json:"warning_threshold"`
	CriticalThreshold float64         `json:"critical_threshold"`
}

func DefaultConfig() Config {
	return Config{
		Interval:          5,
		Format:            "percent",
		WarningThreshold:  80,
		CriticalThreshold: 95,
	}
}

const actionToggleFormat = "toggle_format"

var defaultActions = []clicks.DefaultAction{
	{Button: clicks.Left, Action: actionToggleFormat},
}

var procMountPoint = procfs.DefaultMountPoint

type usage struct {
	totalKiB     uint64
	availableKiB uint64
}

func (u usage) usedKiB() uint64 {
	return u.totalKiB - min(u.availableKiB, u.totalKiB)
}

func (u usage) percent() float64 {
	if u.totalKiB == 0 {
		return 0
	}
	return float64(u.usedKiB()) / float64(u.totalKiB) * 100
}

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	if err := api.SetDefaultActions(ctx, defaultActions); err != nil {
		return err
	}
	icon, err := api.GetIcon("memory_mem")
	if err != nil {
		return err
	}
	widget := widgets.Widget{Icon: icon}
	absolute := config.Format == "absolute"

	for {
		mem, err := blocks.Recoverable(ctx, api, func(ctx context.Context) (usage, error) {
			return readMeminfo(procMountPoint)
		})
		if err != nil {
			return err
		}

		if err := api.SetWidget(ctx, widget.
			WithText(format(mem, absolute)).
			WithState(state(config, mem.percent())),
		); err != nil {
			return err
		}

	wait:
		for {
			event, ok, err := api.EventWithin(ctx, config.Interval.Duration())
			if err != nil {
				return err
			}
			switch {
			case !ok, event.IsUpdateRequest():
				break wait
			case event == blocks.Action(actionToggleFormat):
				absolute = !absolute
				break wait
			}
		}
	}
}

func format(mem usage, absolute bool) string {
	if absolute {
		return fmt.Sprintf("%.1f/%.1fG",
			float64(mem.usedKiB())/(1<<20),
			float64(mem.totalKiB)/(1<<20),
		)
	}
	return fmt.Sprintf("%.0f%%", mem.percent())
}

func state(config Config, percent float64) widgets.State {
	switch {
	case percent >= config.CriticalThreshold:
		return widgets.StateCritical
	case percent >= config.WarningThreshold:
		return widgets.StateWarning
	}
	return widgets.StateIdle
}

func readMeminfo(mountPoint string) (ret usage, err error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return ret, err
	}
	info, err := fs.Meminfo()
	if err != nil {
		return ret, err
	}
	if info.MemTotal == nil || info.MemAvailable == nil {
		return ret, fmt.Errorf("%s: missing MemTotal or MemAvailable", mountPoint)
	}
	ret.totalKiB = *info.MemTotal
	ret.availableKiB = *info.MemAvailable
	return ret, nil
}
