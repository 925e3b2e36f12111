// Package uptime shows how long the system has been running.
package uptime

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/blocks/sysinfo"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "uptime"

//go:embed schema.cue
var Schema string

type Config struct {
	Interval configs.Seconds `json:"interval"`
}

func DefaultConfig() Config {
	return Config{
		Interval: 60,
	}
}

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	icon, err := api.GetIcon("uptime")
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
		if err := api.SetWidget(ctx, widget.WithText(humanize(info.Uptime))); err != nil {
			return err
		}
		if err := api.WaitForUpdateRequestWithin(ctx, config.Interval.Duration()); err != nil {
			return err
		}
	}
}

// humanize keeps the two most significant units.
func humanize(d time.Duration) string {
	const day = 24 * time.Hour
	days := d / day
	hours := (d % day) / time.Hour
	minutes := (d % time.Hour) / time.Minute
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
