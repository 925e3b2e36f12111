package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/taibar/bars"
	"github.com/reusee/taibar/blockconfigs"
	"github.com/reusee/taibar/cmds"
	"github.com/reusee/taibar/configs"
	"github.com/reusee/taibar/logs"
	"github.com/reusee/taibar/modes"
)

var (
	listBlocks = cmds.Switch("-list-blocks", "print the available block kinds and exit")
	check      = cmds.Switch("-check", "validate the config file and exit")
)

func main() {
	cmds.Execute(os.Args[1:])

	if *listBlocks {
		fmt.Println(strings.Join(blockconfigs.Names(), "\n"))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	// a broken config fails here, before any provider decodes it
	var err error
	scope.Call(func(
		loader configs.Loader,
	) {
		err = checkConfig(loader)
	})
	if err == nil && *check {
		fmt.Println("ok")
		return
	}

	if err == nil {
		scope.Call(func(
			logger logs.Logger,
			run bars.Run,
		) {
			err = run(ctx, os.Stdin, os.Stdout)
			if err != nil {
				logger.ErrorContext(ctx, "bar stopped", "error", err)
			}
		})
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func checkConfig(loader configs.Loader) error {
	if err := loader.Check(); err != nil {
		return err
	}
	_, err := blockconfigs.Parse(loader)
	return err
}
