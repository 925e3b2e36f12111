package custom

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/taibar/blocks/sysinfo"
	"github.com/reusee/taibar/widgets"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// A script sets the global "text" and optionally "state", one of "idle",
// "info", "good", "warning" or "critical".
type program struct {
	src string
}

var fileOptions = &syntax.FileOptions{
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

func compile(src string) (*program, error) {
	if _, err := fileOptions.Parse("custom.star", src, 0); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &program{
		src: src,
	}, nil
}

var errNoText = errors.New("script did not set text")

var states = map[string]widgets.State{
	"idle":     widgets.StateIdle,
	"info":     widgets.StateInfo,
	"good":     widgets.StateGood,
	"warning":  widgets.StateWarning,
	"critical": widgets.StateCritical,
}

type scriptBlock struct {
	ID   int
	Name string
}

func predeclared(id int) starlark.StringDict {
	return starlark.StringDict{
		"block": toStarlarkValue(scriptBlock{
			ID:   id,
			Name: Name,
		}),
		"sysinfo": starlark.NewBuiltin("sysinfo", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
				return nil, err
			}
			info, err := sysinfo.Read()
			if err != nil {
				return nil, err
			}
			return toStarlarkValue(info), nil
		}),
		"read_file": starlark.NewBuiltin("read_file", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var path string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "path", &path); err != nil {
				return nil, err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return starlark.String(strings.TrimSpace(string(content))), nil
		}),
		"getenv": starlarkutil.MakeFunc("getenv", func(name string) string {
			return os.Getenv(name)
		}),
		"now": starlarkutil.MakeFunc("now", func() int64 {
			return time.Now().Unix()
		}),
	}
}

func (p *program) run(ctx context.Context, id int) (ret output, err error) {
	thread := &starlark.Thread{
		Name: "custom",
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	globals, err := starlark.ExecFileOptions(fileOptions, thread, "custom.star", p.src, predeclared(id))
	if err != nil {
		return ret, wrap(err)
	}

	text, ok := globals["text"]
	if !ok {
		return ret, errNoText
	}
	str, ok := starlark.AsString(text)
	if !ok {
		str = text.String()
	}
	ret.text = str

	if value, ok := globals["state"]; ok {
		name, _ := starlark.AsString(value)
		state, ok := states[name]
		if !ok {
			return ret, fmt.Errorf("unknown state %s", value)
		}
		ret.state = state
	}
	return ret, nil
}
