// Package custom shows the output of a shell command or a starlark script.
package custom

import (
	"context"
	_ "embed"
	"errors"
	"strings"

	"github.com/reusee/e5"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/widgets"
)

const Name = "custom"

//go:embed schema.cue
var Schema string

// Exactly one of Command and Script is set. An Interval of zero refreshes
// only on update requests.
type Config struct {
	Command       string          `json:"command"`
	Script        string          `json:"script"`
	Shell         string          `json:"shell"`
	Interval      configs.Seconds `json:"interval"`
	HideWhenEmpty bool            `json:"hide_when_empty"`
}

func DefaultConfig() Config {
	return Config{
		Shell:    blocks.DefaultShell,
		Interval: 10,
	}
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var (
	ErrNoSource   = errors.New("one of command and script is required")
	ErrTwoSources = errors.New("command and script are mutually exclusive")
)

type output struct {
	text  string
	state widgets.State
}

func Run(ctx context.Context, config Config, api *blocks.CommonApi) error {
	var produce func(context.Context) (output, error)
	switch {
	case config.Command == "" && config.Script == "":
		return ErrNoSource
	case config.Command != "" && config.Script != "":
		return ErrTwoSources
	case config.Command != "":
		produce = func(ctx context.Context) (output, error) {
			out, err := api.RunCommand(ctx, config.Shell, config.Command)
			if err != nil {
				return output{}, wrap(err)
			}
			text, _, _ := strings.Cut(out, "\n")
			return output{text: text}, nil
		}
	default:
		program, err := compile(config.Script)
		if err != nil {
			return err
		}
		produce = func(ctx context.Context) (output, error) {
			return program.run(ctx, api.ID)
		}
	}

	hidden := false
	for {
		out, err := blocks.Recoverable(ctx, api, produce)
		if err != nil {
			return err
		}

		if out.text == "" && config.HideWhenEmpty {
			if !hidden {
				if err := api.Hide(ctx); err != nil {
					return err
				}
				hidden = true
			}
		} else {
			if err := api.SetWidget(ctx, widgets.Widget{
				Text:  out.text,
				State: out.state,
			}); err != nil {
				return err
			}
			hidden = false
		}

		if config.Interval <= 0 {
			err = api.WaitForUpdateRequest(ctx)
		} else {
			err = api.WaitForUpdateRequestWithin(ctx, config.Interval.Duration())
		}
		if err != nil {
			return err
		}
	}
}
