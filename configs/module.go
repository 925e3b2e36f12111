package configs

import (
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/taibar/cmds"
	"github.com/reusee/taibar/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

var configPath = cmds.Var[string]("-config", "load this config file instead of searching the default locations")

var fileNames = []string{
	"taibar.cue",
	".taibar.cue",
}

// Paths lists the config files to load, highest priority first.
type Paths []string

func (Module) Paths(
	logger logs.Logger,
) (paths Paths) {
	defer func() {
		logger.Info("config files", "paths", []string(paths))
	}()

	if *configPath != "" {
		return Paths{*configPath}
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "taibar"), configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
