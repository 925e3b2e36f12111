// Package blocktest drives a single block against an in-memory bar.
package blocktest

import (
	"context"
	"testing"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/icons"
	"github.com/reusee/taibar/syncs"
	"github.com/reusee/taibar/widgets"
)

const timeout = 5 * time.Second

type Harness struct {
	T      *testing.T
	Api    *blocks.CommonApi
	Events chan blocks.BlockEvent
	Queue  *blocks.RequestQueue

	cancel context.CancelFunc
	done   chan error
}

func New(t *testing.T, id int) *Harness {
	events := make(chan blocks.BlockEvent, 8)
	queue := blocks.NewRequestQueue(32)
	return &Harness{
		T:      t,
		Events: events,
		Queue:  queue,
		Api: &blocks.CommonApi{
			ID: id,
			Shared: &blocks.SharedConfig{
				Icons:    icons.None,
				Commands: syncs.NewSemaphore(2),
			},
			Events:        events,
			Requests:      queue,
			ErrorInterval: 20 * time.Millisecond,
		},
	}
}

// Start runs future in the background until Stop.
func (h *Harness) Start(future blocks.Future) {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan error, 1)
	go func() {
		h.done <- future(ctx)
	}()
	h.T.Cleanup(cancel)
}

func (h *Harness) Stop() error {
	h.cancel()
	return h.Wait()
}

func (h *Harness) Wait() error {
	select {
	case err := <-h.done:
		return err
	case <-time.After(timeout):
		h.T.Fatal("block did not finish")
	}
	return nil
}

func (h *Harness) Send(event blocks.BlockEvent) {
	select {
	case h.Events <- event:
	case <-time.After(timeout):
		h.T.Fatal("block does not receive events")
	}
}

func (h *Harness) NextRequest() blocks.Request {
	select {
	case req := <-h.Queue.Requests():
		if req.BlockID != h.Api.ID {
			h.T.Fatalf("request from block %d, expected %d", req.BlockID, h.Api.ID)
		}
		return req
	case err := <-h.done:
		h.T.Fatalf("block finished: %v", err)
	case <-time.After(timeout):
		h.T.Fatal("no request")
	}
	return blocks.Request{}
}

// NextWidget skips default actions and fails on anything but a widget.
func (h *Harness) NextWidget() widgets.Widget {
	for {
		switch cmd := h.NextRequest().Cmd.(type) {
		case blocks.SetDefaultActions:
			continue
		case blocks.SetWidget:
			return cmd.Widget
		case blocks.SetError:
			h.T.Fatalf("block error: %v", cmd.Err)
		default:
			h.T.Fatalf("unexpected request %s", cmd.Name())
		}
	}
}

// NextError skips default actions and fails on anything but an error.
func (h *Harness) NextError() error {
	for {
		switch cmd := h.NextRequest().Cmd.(type) {
		case blocks.SetDefaultActions:
			continue
		case blocks.SetError:
			return cmd.Err
		default:
			h.T.Fatalf("unexpected request %s", cmd.Name())
		}
	}
}
