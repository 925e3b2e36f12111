package metrics

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

func (Module) Metrics() *Metrics {
	return New()
}

// Addr is where /metrics is served. Empty disables the server.
type Addr string

func (Module) Addr(
	loader configs.Loader,
) Addr {
	return configs.First[Addr](loader, "metrics_addr")
}
