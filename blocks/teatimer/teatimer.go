// Package teatimer is a countdown set with the mouse wheel.
package teatimer

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "tea_timer"

//go:embed schema.cue
var Schema string

type Config struct {
	Increment    configs.Seconds `json:"increment"`
	HideWhenZero bool            `json:"hide_when_zero"`
	DoneCommand  string          `json:"done_command"`
	Shell        string          `json:"shell"`
}

func DefaultConfig() Config {
	return Config{
		Increment: 30,
		Shell:     blocks.DefaultShell,
	}
}

const (
	actionIncrement = "increment"
	actionDecrement = "decrement"
	actionReset     = "reset"
)

var defaultActions = []clicks.DefaultAction{
	{Button: clicks.WheelUp, Action: actionIncrement},
	{Button: clicks.WheelDown, Action: actionDecrement},
	{Button: clicks.Right, Action: actionReset},
}

var now = time.Now

const tick = time.Second

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	if err := api.SetDefaultActions(ctx, defaultActions); err != nil {
		return err
	}
	icon, err := api.GetIcon("tea")
	if err != nil {
		return err
	}
	increment := config.Increment.Duration()

	var deadline time.Time
	var shown widgets.Widget
	visible, hidden := false, false
	for {
		remaining := max(deadline.Sub(now()), 0)
		running := remaining > 0

		if !running && !deadline.IsZero() {
			deadline = time.Time{}
			if config.DoneCommand != "" {
				if _, err := api.RunCommand(ctx, config.Shell, config.DoneCommand); err != nil {
					api.Logger().WarnContext(ctx, "tea timer done command", "error", err)
				}
			}
		}

		if !running && config.HideWhenZero {
			if !hidden {
				if err := api.Hide(ctx); err != nil {
					return err
				}
				hidden, visible = true, false
			}
		} else {
			widget := widgets.Widget{
				Icon:  icon,
				State: widgets.StateIdle,
			}
			if running {
				widget.Text = format(remaining)
				widget.State = widgets.StateInfo
			}
			// ticks only redraw when the shown time changes
			if !visible || widget != shown {
				if err := api.SetWidget(ctx, widget); err != nil {
					return err
				}
				shown, visible, hidden = widget, true, false
			}
		}

		var event blocks.BlockEvent
		if running {
			var ok bool
			event, ok, err = api.EventWithin(ctx, min(tick, remaining))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		} else {
			event, err = api.Event(ctx)
			if err != nil {
				return err
			}
		}

		switch event {
		case blocks.Action(actionIncrement):
			deadline = now().Add(remaining + increment)
		case blocks.Action(actionDecrement):
			if remaining > increment {
				deadline = now().Add(remaining - increment)
			} else {
				deadline = time.Time{}
			}
		case blocks.Action(actionReset):
			deadline = time.Time{}
		}
	}
}

func format(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
