package bars

import (
	"time"

	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/icons"
	"github.com/reusee/taibar/vars"
)

const (
	DefaultEventCapacity        = 16
	DefaultEventDeliveryTimeout = time.Second
	DefaultMaxCommands          = 8
)

// Settings are the top-level keys of the config file.
type Settings struct {
	ErrorInterval        time.Duration
	EventCapacity        int
	RequestCapacity      int
	EventDeliveryTimeout time.Duration
	MaxCommands          int
	Icons                string
	IconsOverrides       icons.Set
}

func (Module) Settings(
	loader configs.Loader,
) Settings {
	return Settings{
		ErrorInterval: configs.First[configs.Seconds](loader, "error_interval").Duration(),
		EventCapacity: vars.FirstNonZero(
			configs.First[int](loader, "event_capacity"),
			DefaultEventCapacity,
		),
		RequestCapacity: configs.First[int](loader, "request_capacity"),
		EventDeliveryTimeout: vars.FirstNonZero(
			configs.First[configs.Seconds](loader, "event_delivery_timeout").Duration(),
			DefaultEventDeliveryTimeout,
		),
		MaxCommands: vars.FirstNonZero(
			configs.First[int](loader, "max_commands"),
			DefaultMaxCommands,
		),
		Icons:          configs.First[string](loader, "icons"),
		IconsOverrides: iconsOverrides(loader),
	}
}

// iconsOverrides merges icons_overrides of every source; earlier sources win.
func iconsOverrides(loader configs.Loader) icons.Set {
	var ret icons.Set
	for set := range configs.All[icons.Set](loader, "icons_overrides") {
		ret = set.With(ret)
	}
	return ret
}
