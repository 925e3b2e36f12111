// Package nets provides the HTTP client shared by blocks that fetch remote
// data. Requests go through the configured proxy unless the target is local.
package nets

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
