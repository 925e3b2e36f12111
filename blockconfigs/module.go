package blockconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibar/configs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}

func (Module) Loader(
	paths configs.Paths,
	schema Schema,
) configs.Loader {
	return configs.NewLoader(paths, string(schema))
}
