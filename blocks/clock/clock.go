// Package clock shows the current time. Its config tag is "time".
package clock

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "time"

//go:embed schema.cue
var Schema string

// Config.Format is a Go time layout.
type Config struct {
	Interval configs.Seconds `json:"interval"`
	Format   string          `json:"format"`
	Timezone string          `json:"timezone"`
}

func DefaultConfig() Config {
	return Config{
		Interval: 10,
		Format:   "Mon 02/01 15:04",
	}
}

// now is replaced in tests.
var now = time.Now

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	location := time.Local
	if config.Timezone != "" {
		var err error
		location, err = time.LoadLocation(config.Timezone)
		if err != nil {
			return fmt.Errorf("timezone %q: %w", config.Timezone, err)
		}
	}

	icon, err := api.GetIcon("time")
	if err != nil {
		return err
	}
	widget := widgets.Widget{Icon: icon}

	for {
		text := now().In(location).Format(config.Format)
		if err := api.SetWidget(ctx, widget.WithText(text)); err != nil {
			return err
		}
		if err := api.WaitForUpdateRequestWithin(ctx, config.Interval.Duration()); err != nil {
			return err
		}
	}
}
