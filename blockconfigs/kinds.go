package blockconfigs

import (
	"context"
	"fmt"
	"slices"

	"cuelang.org/go/cue"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/blocks/clock"
	"github.com/reusee/taibar/blocks/custom"
	"github.com/reusee/taibar/blocks/externalip"
	"github.com/reusee/taibar/blocks/load"
	"github.com/reusee/taibar/blocks/memory"
	"github.com/reusee/taibar/blocks/teatimer"
	"github.com/reusee/taibar/blocks/toggle"
	"github.com/reusee/taibar/blocks/uptime"
	"github.com/samber/lo"
)

type kind struct {
	name   string
	schema string
	// decode returns the runner bound to the decoded config
	decode func(value cue.Value) (runner, error)
}

type runner func(ctx context.Context, api *blocks.CommonApi) error

func define[C any](
	name string,
	schema string,
	defaults func() C,
	run func(context.Context, C, *blocks.CommonApi) error,
) kind {
	return kind{
		name:   name,
		schema: schema,
		decode: func(value cue.Value) (runner, error) {
			config := defaults()
			if err := value.Decode(&config); err != nil {
				return nil, err
			}
			return func(ctx context.Context, api *blocks.CommonApi) error {
				return run(ctx, config, api)
			}, nil
		},
	}
}

var kinds = []kind{
	define(clock.Name, clock.Schema, clock.DefaultConfig, clock.Run),
	define(custom.Name, custom.Schema, custom.DefaultConfig, custom.Run),
	define(externalip.Name, externalip.Schema, externalip.DefaultConfig, externalip.Run),
	define(load.Name, load.Schema, load.DefaultConfig, load.Run),
	define(memory.Name, memory.Schema, memory.DefaultConfig, memory.Run),
	define(teatimer.Name, teatimer.Schema, teatimer.DefaultConfig, teatimer.Run),
	define(toggle.Name, toggle.Schema, toggle.DefaultConfig, toggle.Run),
	define(uptime.Name, uptime.Schema, uptime.DefaultConfig, uptime.Run),
}

var kindsByName = lo.KeyBy(kinds, func(k kind) string {
	return k.name
})

// Names lists the block tags, sorted.
func Names() []string {
	names := lo.Map(kinds, func(k kind, _ int) string {
		return k.name
	})
	slices.Sort(names)
	return names
}

func defName(name string) string {
	return "#" + lo.PascalCase(name)
}

// blockSchema is the closed definition of one block entry, common keys included.
func (k kind) blockSchema() string {
	return fmt.Sprintf("%s: {\n#Common\nblock: %q\n%s\n}\n", defName(k.name), k.name, k.schema)
}
