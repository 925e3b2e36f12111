package cmds

import "os"

var GlobalExecutor = func() *Executor {
	e := NewExecutor()
	e.exit = os.Exit
	return e
}()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) {
	GlobalExecutor.MustExecute(args)
}
