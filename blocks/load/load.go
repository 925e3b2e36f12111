// Package load shows the system load average.
package load

import (
	"context"
	_ "embed"
	"fmt"
	"runtime"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/blocks/sysinfo"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "load"

//go:embed schema.cue
var Schema string

// Thresholds apply to the one minute load divided by the number of CPUs.
type Config struct {
	Interval          configs.Seconds `json:"interval"`
	Format            string          `json:"format"`
	InfoThreshold     float64         `json:"info_threshold"`
	WarningThreshold  float64         `json:"warning_threshold"`
	CriticalThreshold float64         `json:"critical_threshold"`
}

func DefaultConfig() Config {
	return Config{
		Interval:          3,
		Format:            "short",
		InfoThreshold:     0.3,
		WarningThreshold:  0.6,
		CriticalThreshold: 0.9,
	}
}

var numCPU = runtime.NumCPU

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	icon, err := api.GetIcon("cpu")
	if err != nil {
		return err
	}
	widget := widgets.Widget{Icon: icon}

	for {
		info, err := blocks.Recoverable(ctx, api, func(ctx context.Context) (sysinfo.Info, error) {
			return sysinfo.Read()
		})
		if err != nil {
			return err
		}

		perCPU := info.Loads[0] / float64(max(numCPU(), 1))
		if err := api.SetWidget(ctx, widget.
			WithText(format(config.Format, info.Loads)).
			WithShortText(fmt.Sprintf("%.2f", info.Loads[0])).
			WithState(state(config, perCPU)),
		); err != nil {
			return err
		}

		if err := api.WaitForUpdateRequestWithin(ctx, config.Interval.Duration()); err != nil {
			return err
		}
	}
}

func format(format string, loads [3]float64) string {
	if format == "long" {
		return fmt.Sprintf("%.2f %.2f %.2f", loads[0], loads[1], loads[2])
	}
	return fmt.Sprintf("%.2f", loads[0])
}

func state(config Config, load float64) widgets.State {
	switch {
	case load >= config.CriticalThreshold:
		return widgets.StateCritical
	case load >= config.WarningThreshold:
		return widgets.StateWarning
	case load >= config.InfoThreshold:
		return widgets.StateInfo
	}
	return widgets.StateIdle
}
