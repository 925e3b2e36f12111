package bars

import (
	"context"
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/taibar/blockconfigs"
	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/icons"
	"github.com/reusee/taibar/logs"
	"github.com/reusee/taibar/metrics"
	"github.com/reusee/taibar/nets"
	"github.com/reusee/taibar/syncs"
)

type Module struct {
	dscope.Module
	BlockConfigs blockconfigs.Module
	Configs      configs.Module
	Logs         logs.Module
	Metrics      metrics.Module
	Nets         nets.Module
}

type IconSet icons.Set

// IconSet panics on an unknown set name; the config schema rules it out.
func (Module) IconSet(
	settings Settings,
) IconSet {
	set, err := icons.Named(settings.Icons)
	if err != nil {
		panic(err)
	}
	return IconSet(set.With(settings.IconsOverrides))
}

func (Module) SharedConfig(
	settings Settings,
	iconSet IconSet,
	logger logs.Logger,
	httpClient nets.HTTPClient,
) *blocks.SharedConfig {
	return &blocks.SharedConfig{
		Icons:      icons.Set(iconSet),
		Logger:     logger,
		HTTPClient: httpClient,
		Commands:   syncs.NewSemaphore(settings.MaxCommands),
	}
}

// Run parses the configured blocks, serves metrics and runs the bar until
// ctx is done.
type Run func(ctx context.Context, in io.Reader, out io.Writer) error

func (Module) Run(
	loader configs.Loader,
	settings Settings,
	shared *blocks.SharedConfig,
	logger logs.Logger,
	m *metrics.Metrics,
	metricsAddr metrics.Addr,
) Run {
	return func(ctx context.Context, in io.Reader, out io.Writer) error {
		if err := loader.Check(); err != nil {
			return err
		}
		parsed, err := blockconfigs.Parse(loader)
		if err != nil {
			return err
		}
		instances := make([]BlockConfig, 0, len(parsed))
		for _, config := range parsed {
			instances = append(instances, config)
		}

		go m.Serve(ctx, metricsAddr, logger)

		logger.InfoContext(ctx, "bar started", "blocks", len(instances))
		return New(instances, settings, shared, logger, m).Run(ctx, in, out)
	}
}
