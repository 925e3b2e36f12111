package blocks

import (
	"context"

	"github.com/reusee/taibar/procs"
)

// Recoverable calls op until it succeeds and returns its value.
//
// After each failure the error is shown on the bar, then the loop waits for
// ErrorInterval or an update request before the next attempt. There is no
// retry limit. Failing to send the error ends the loop with that failure.
//
//	status, err := blocks.Recoverable(ctx, api, func(ctx context.Context) (*Status, error) {
//		return readStatus(ctx, path)
//	})
func Recoverable[T any](ctx context.Context, api *CommonApi, op func(context.Context) (T, error)) (T, error) {
	r := &recovery[T]{
		api: api,
		op:  op,
	}
	err := procs.Run(ctx, r.attempting())
	return r.value, err
}

type recovery[T any] struct {
	api   *CommonApi
	op    func(context.Context) (T, error)
	value T
}

type proc = procs.Proc[context.Context]

func (r *recovery[T]) attempting() proc {
	return procs.Func[context.Context](func(ctx context.Context) (proc, error) {
		value, err := r.op(ctx)
		if err == nil {
			r.value = value
			return nil, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err := r.api.SetError(ctx, err); err != nil {
			return nil, err
		}
		return r.waiting(), nil
	})
}

func (r *recovery[T]) waiting() proc {
	return procs.Func[context.Context](func(ctx context.Context) (proc, error) {
		interval := r.api.ErrorInterval
		if interval <= 0 {
			interval = DefaultErrorInterval
		}
		// timer and update request both lead to another attempt
		if err := r.api.WaitForUpdateRequestWithin(ctx, interval); err != nil {
			return nil, err
		}
		return r.attempting(), nil
	})
}
