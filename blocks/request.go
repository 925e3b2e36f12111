package blocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/widgets"
)

type Request struct {
	BlockID int
	Cmd     RequestCmd
}

type RequestCmd interface {
	requestCmd()
	Name() string
}

// SetWidget replaces the displayed widget.
type SetWidget struct {
	Widget widgets.Widget
}

// UnsetWidget hides the block until the next SetWidget.
type UnsetWidget struct{}

// SetError shows an error indicator; the message is revealed on click.
type SetError struct {
	Err error
}

type SetDefaultActions struct {
	Actions []clicks.DefaultAction
}

func (SetWidget) requestCmd()         {}
func (UnsetWidget) requestCmd()       {}
func (SetError) requestCmd()          {}
func (SetDefaultActions) requestCmd() {}

func (SetWidget) Name() string         { return "set_widget" }
func (UnsetWidget) Name() string       { return "unset_widget" }
func (SetError) Name() string          { return "set_error" }
func (SetDefaultActions) Name() string { return "set_default_actions" }

// RequestQueue is the bounded channel shared by every block and drained by
// the bar. Requests from one sender are delivered in send order.
type RequestQueue struct {
	ch        chan Request
	closed    chan struct{}
	closeOnce sync.Once
}

func NewRequestQueue(capacity int) *RequestQueue {
	return &RequestQueue{
		ch:     make(chan Request, max(capacity, 1)),
		closed: make(chan struct{}),
	}
}

// Send blocks until the request is queued, the consumer closes the queue, or
// ctx is done.
func (q *RequestQueue) Send(ctx context.Context, req Request) error {
	select {
	case <-q.closed:
		return fmt.Errorf("send %s: %w", req.Cmd.Name(), ErrRequestQueueClosed)
	default:
	}
	select {
	case q.ch <- req:
		return nil
	case <-q.closed:
		return fmt.Errorf("send %s: %w", req.Cmd.Name(), ErrRequestQueueClosed)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Requests is the consumer side. Only the bar reads from it.
func (q *RequestQueue) Requests() <-chan Request {
	return q.ch
}

// Recv returns the next request, for consumers that do not select.
func (q *RequestQueue) Recv(ctx context.Context) (Request, error) {
	select {
	case req := <-q.ch:
		return req, nil
	case <-ctx.Done():
		return Request{}, ctx.Err()
	}
}

// Close marks the consumer as gone. Pending and future sends fail.
func (q *RequestQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
}

func (q *RequestQueue) Closed() <-chan struct{} {
	return q.closed
}

func (q *RequestQueue) Len() int {
	return len(q.ch)
}

func (q *RequestQueue) Cap() int {
	return cap(q.ch)
}
