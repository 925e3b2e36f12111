// Package toggle switches something on and off with shell commands. The
// state command printing anything means on.
package toggle

import (
	"context"
	_ "embed"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "toggle"

//go:embed schema.cue
var Schema string

type Config struct {
	Text         string          `json:"text"`
	CommandState string          `json:"command_state"`
	CommandOn    string          `json:"command_on"`
	CommandOff   string          `json:"command_off"`
	Shell        string          `json:"shell"`
	Interval     configs.Seconds `json:"interval"`
}

func DefaultConfig() Config {
	return Config{
		Shell: blocks.DefaultShell,
	}
}

const actionToggle = "toggle"

var defaultActions = []clicks.DefaultAction{
	{Button: clicks.Left, Action: actionToggle},
}

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	if err := api.SetDefaultActions(ctx, defaultActions); err != nil {
		return err
	}
	iconOn, err := api.GetIcon("toggle_on")
	if err != nil {
		return err
	}
	iconOff, err := api.GetIcon("toggle_off")
	if err != nil {
		return err
	}

	next := func() (blocks.BlockEvent, bool, error) {
		if config.Interval <= 0 {
			event, err := api.Event(ctx)
			return event, err == nil, err
		}
		return api.EventWithin(ctx, config.Interval.Duration())
	}

	for {
		on, err := blocks.Recoverable(ctx, api, func(ctx context.Context) (bool, error) {
			out, err := api.RunCommand(ctx, config.Shell, config.CommandState)
			if err != nil {
				return false, err
			}
			return out != "", nil
		})
		if err != nil {
			return err
		}

		widget := widgets.Widget{
			Icon:  iconOff,
			Text:  config.Text,
			State: widgets.StateIdle,
		}
		if on {
			widget.Icon = iconOn
			widget.State = widgets.StateGood
		}
		if err := api.SetWidget(ctx, widget); err != nil {
			return err
		}

	wait:
		for {
			event, ok, err := next()
			if err != nil {
				return err
			}
			switch {
			case !ok, event.IsUpdateRequest():
				break wait
			case event == blocks.Action(actionToggle):
				command := config.CommandOn
				if on {
					command = config.CommandOff
				}
				if _, err := api.RunCommand(ctx, config.Shell, command); err != nil {
					// shown until the next refresh
					if err := api.SetError(ctx, err); err != nil {
						return err
					}
					continue
				}
				// let the switched service settle before probing
				if err := sleep(ctx, settleDelay); err != nil {
					return err
				}
				break wait
			}
		}
	}
}

var settleDelay = 100 * time.Millisecond

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
