package procs

// Run drives proc until a state returns nil or an error.
func Run[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		var err error
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
