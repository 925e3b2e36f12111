// Package blockconfigs maps the "block" tag of each config entry to a block
// kind, decodes the entry and starts the block.
package blockconfigs

import (
	"context"
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/configs"
)

var ErrUnknownBlock = errors.New("unknown block")

type BlockConfig struct {
	Common blocks.CommonConfig
	name   string
	run    runner
}

func (b BlockConfig) Name() string {
	return b.name
}

func (b BlockConfig) CommonConfig() blocks.CommonConfig {
	return b.Common
}

// Run binds the block to api. Errors of the returned future are attributed
// to the block; success is passed through.
func (b BlockConfig) Run(api *blocks.CommonApi) blocks.Future {
	return func(ctx context.Context) error {
		return blocks.InBlock(b.run(ctx, api), b.name, api.ID)
	}
}

// Parse decodes the blocks list of the first config source defining it.
func Parse(loader configs.Loader) ([]BlockConfig, error) {
	value, err := loader.Lookup("blocks")
	if errors.Is(err, configs.ErrValueNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	schema := value.Context().CompileString(buildSchema())
	if err := schema.Err(); err != nil {
		return nil, err
	}

	iter, err := value.List()
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	var ret []BlockConfig
	for i := 0; iter.Next(); i++ {
		config, err := parseBlock(schema, iter.Value())
		if err != nil {
			return nil, fmt.Errorf("blocks[%d]: %w", i, err)
		}
		ret = append(ret, config)
	}
	return ret, nil
}

func parseBlock(schema cue.Value, value cue.Value) (ret BlockConfig, err error) {
	name, err := value.LookupPath(cue.ParsePath("block")).String()
	if err != nil {
		return ret, err
	}
	k, ok := kindsByName[name]
	if !ok {
		return ret, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
	}

	// the whole file was validated already; this names the offending block
	def := schema.LookupPath(cue.ParsePath(defName(name)))
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return ret, fmt.Errorf("%s: %w", name, err)
	}

	if err := value.Decode(&ret.Common); err != nil {
		return ret, fmt.Errorf("%s: %w", name, err)
	}
	run, err := k.decode(value)
	if err != nil {
		return ret, fmt.Errorf("%s: %w", name, err)
	}
	ret.name = name
	ret.run = run
	return ret, nil
}
