package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/reusee/e5"
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/icons"
	"github.com/reusee/taibar/syncs"
	"github.com/reusee/taibar/widgets"
)

func newTestApi(id int) (*CommonApi, chan BlockEvent, *RequestQueue) {
	events := make(chan BlockEvent, 8)
	requests := NewRequestQueue(16)
	return &CommonApi{
		ID:            id,
		Shared:        &SharedConfig{Icons: icons.None},
		Events:        events,
		Requests:      requests,
		ErrorInterval: time.Second,
	}, events, requests
}

func drain(q *RequestQueue) (ret []Request) {
	for {
		select {
		case req := <-q.Requests():
			ret = append(ret, req)
		default:
			return
		}
	}
}

func TestBlockEventEquality(t *testing.T) {
	if Action("a") != Action("a") {
		t.Fatal()
	}
	if Action("a") == Action("b") {
		t.Fatal()
	}
	if Action("") == UpdateRequest {
		t.Fatal()
	}
	if !UpdateRequest.IsUpdateRequest() || Action("a").IsUpdateRequest() {
		t.Fatal()
	}
	if name, ok := Action("toggle").ActionName(); !ok || name != "toggle" {
		t.Fatalf("got %v %v", name, ok)
	}
	if _, ok := UpdateRequest.ActionName(); ok {
		t.Fatal()
	}
	if UpdateRequest.String() != "update request" || Action("x").String() != "action(x)" {
		t.Fatal()
	}
}

func TestRequestsOrder(t *testing.T) {
	api, _, queue := newTestApi(7)
	ctx := context.Background()

	const n = 10
	for i := range n {
		if err := api.SetWidget(ctx, widgets.Widget{Text: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}
	reqs := drain(queue)
	if len(reqs) != n {
		t.Fatalf("got %d", len(reqs))
	}
	for i, req := range reqs {
		if req.BlockID != 7 {
			t.Fatalf("got %v", req.BlockID)
		}
		cmd, ok := req.Cmd.(SetWidget)
		if !ok {
			t.Fatalf("got %T", req.Cmd)
		}
		if cmd.Widget.Text != fmt.Sprint(i) {
			t.Fatalf("got %v at %d", cmd.Widget.Text, i)
		}
	}
}

func TestHideThenSetWidget(t *testing.T) {
	api, _, queue := newTestApi(2)
	ctx := context.Background()
	w := widgets.Widget{Text: "W"}
	if err := api.Hide(ctx); err != nil {
		t.Fatal(err)
	}
	if err := api.SetWidget(ctx, w); err != nil {
		t.Fatal(err)
	}
	reqs := drain(queue)
	if len(reqs) != 2 {
		t.Fatalf("got %v", reqs)
	}
	if _, ok := reqs[0].Cmd.(UnsetWidget); !ok || reqs[0].BlockID != 2 {
		t.Fatalf("got %+v", reqs[0])
	}
	if cmd, ok := reqs[1].Cmd.(SetWidget); !ok || cmd.Widget != w || reqs[1].BlockID != 2 {
		t.Fatalf("got %+v", reqs[1])
	}
}

func TestSetDefaultActions(t *testing.T) {
	api, _, queue := newTestApi(1)
	actions := []clicks.DefaultAction{
		{Button: clicks.Left, Action: "toggle"},
	}
	if err := api.SetDefaultActions(context.Background(), actions); err != nil {
		t.Fatal(err)
	}
	reqs := drain(queue)
	cmd, ok := reqs[0].Cmd.(SetDefaultActions)
	if !ok || len(cmd.Actions) != 1 || cmd.Actions[0].Action != "toggle" {
		t.Fatalf("got %+v", reqs[0])
	}
}

func TestSendAfterConsumerGone(t *testing.T) {
	api, _, queue := newTestApi(1)
	queue.Close()
	queue.Close()

	done := make(chan error, 1)
	go func() {
		done <- api.SetError(context.Background(), errors.New("boom"))
	}()
	select {
	case err := <-done:
		if !errors.Is(err, ErrRequestQueueClosed) {
			t.Fatalf("got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("send hung")
	}
}

func TestPendingSendFailsOnClose(t *testing.T) {
	events := make(chan BlockEvent)
	queue := NewRequestQueue(1)
	api := &CommonApi{
		ID:       1,
		Events:   events,
		Requests: queue,
	}
	ctx := context.Background()
	if err := api.Hide(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		// queue is full, blocks until closed
		done <- api.Hide(ctx)
	}()
	time.Sleep(10 * time.Millisecond)
	queue.Close()
	if err := <-done; !errors.Is(err, ErrRequestQueueClosed) {
		t.Fatalf("got %v", err)
	}
}

func TestSendRespectsContext(t *testing.T) {
	queue := NewRequestQueue(1)
	api := &CommonApi{Requests: queue}
	if err := api.Hide(context.Background()); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := api.Hide(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestRecv(t *testing.T) {
	queue := NewRequestQueue(0)
	if queue.Cap() != 1 {
		t.Fatalf("got %v", queue.Cap())
	}
	api := &CommonApi{ID: 4, Requests: queue}
	if err := api.Hide(context.Background()); err != nil {
		t.Fatal(err)
	}
	if queue.Len() != 1 {
		t.Fatal()
	}
	req, err := queue.Recv(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if req.BlockID != 4 || req.Cmd.Name() != "unset_widget" {
		t.Fatalf("got %+v", req)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := queue.Recv(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestEventCancelSafety(t *testing.T) {
	api, events, _ := newTestApi(1)

	// abandoned wait consumes nothing
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := api.Event(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	events <- Action("a")
	events <- Action("b")
	event, err := api.Event(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if event != Action("a") {
		t.Fatalf("got %v", event)
	}

	if len(events) != 1 {
		t.Fatalf("got %d pending", len(events))
	}
	<-events

	// a done ctx and a pending event: the event is either returned or left
	// for the next call, never lost or duplicated
	done, cancelDone := context.WithCancel(context.Background())
	cancelDone()
	for i := range 1000 {
		events <- Action(fmt.Sprint(i))
		event, err := api.Event(done)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("got %v", err)
			}
			event, err = api.Event(context.Background())
			if err != nil {
				t.Fatal(err)
			}
		}
		if event != Action(fmt.Sprint(i)) {
			t.Fatalf("got %v", event)
		}
		if len(events) != 0 {
			t.Fatal("event duplicated")
		}
	}
}

func TestEventWithin(t *testing.T) {
	api, events, _ := newTestApi(1)
	ctx := context.Background()

	_, ok, err := api.EventWithin(ctx, 10*time.Millisecond)
	if err != nil || ok {
		t.Fatalf("got %v %v", ok, err)
	}

	events <- UpdateRequest
	event, ok, err := api.EventWithin(ctx, time.Second)
	if err != nil || !ok || event != UpdateRequest {
		t.Fatalf("got %v %v %v", event, ok, err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, _, err := api.EventWithin(canceled, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestWaitForUpdateRequest(t *testing.T) {
	api, events, _ := newTestApi(1)
	events <- Action("a")
	events <- Action("b")
	events <- UpdateRequest
	events <- Action("c")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.WaitForUpdateRequest(ctx); err != nil {
		t.Fatal(err)
	}
	event, err := api.Event(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if event != Action("c") {
		t.Fatalf("got %v", event)
	}

	start := time.Now()
	if err := api.WaitForUpdateRequestWithin(ctx, 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("returned early")
	}
}

func TestEventStreamEnded(t *testing.T) {
	api, events, _ := newTestApi(3)
	close(events)
	defer func() {
		p := recover()
		err, ok := p.(error)
		if !ok || !errors.Is(err, ErrEventStreamEnded) {
			t.Fatalf("got %v", p)
		}
	}()
	api.Event(context.Background())
	t.Fatal("should panic")
}

func TestGetIcon(t *testing.T) {
	api, _, _ := newTestApi(1)
	icon, err := api.GetIcon("time")
	if err != nil || icon != "TIME" {
		t.Fatalf("got %v %v", icon, err)
	}
	if _, err := api.GetIcon("nope"); !errors.Is(err, ErrIconNotFound) {
		t.Fatalf("got %v", err)
	}

	api.Shared = &SharedConfig{Icons: icons.Awesome}
	icon, err = api.GetIconInProgression("bat", 1)
	if err != nil || icon != "\uf240" {
		t.Fatalf("got %q %v", icon, err)
	}
	if _, err := api.GetIconInProgression("nope", 1); !errors.Is(err, ErrIconNotFound) {
		t.Fatalf("got %v", err)
	}

	api.Shared = nil
	if _, err := api.GetIcon("time"); !errors.Is(err, ErrIconNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestMessage(t *testing.T) {
	wrap := e5.Wrap.With(e5.WrapStacktrace)
	base := errors.New("boom")
	err := InBlock(fmt.Errorf("fetch: %w", wrap(base)), "custom", 3)
	if !strings.Contains(err.Error(), ".go:") {
		t.Fatalf("no frames in %q", err.Error())
	}
	if msg := Message(err); msg != "in block custom (#3): fetch: boom" {
		t.Fatalf("got %q", msg)
	}
	if !errors.Is(err, base) {
		t.Fatal()
	}
	if msg := Message(base); msg != "boom" {
		t.Fatalf("got %q", msg)
	}
	if msg := Message(nil); msg != "" {
		t.Fatalf("got %q", msg)
	}
}

func TestInBlock(t *testing.T) {
	if InBlock(nil, "load", 1) != nil {
		t.Fatal()
	}
	base := errors.New("boom")
	err := InBlock(base, "load", 1)
	var blockErr *BlockError
	if !errors.As(err, &blockErr) {
		t.Fatal()
	}
	if blockErr.Block != "load" || blockErr.ID != 1 {
		t.Fatalf("got %+v", blockErr)
	}
	if !errors.Is(err, base) {
		t.Fatal()
	}
	if err.Error() != "in block load (#1): boom" {
		t.Fatalf("got %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	api, _, _ := newTestApi(1)
	api.Shared.Commands = syncs.NewSemaphore(1)
	ctx := context.Background()

	out, err := api.RunCommand(ctx, "", "echo '  hello '")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Fatalf("got %q", out)
	}

	_, err = api.RunCommand(ctx, "sh", "echo oops >&2; exit 3")
	if err == nil || !strings.Contains(err.Error(), "oops") {
		t.Fatalf("got %v", err)
	}

	// the slot is released after each command
	if _, err := api.RunCommand(ctx, "sh", "true"); err != nil {
		t.Fatal(err)
	}
}

func TestRunCommandCanceled(t *testing.T) {
	api, _, _ := newTestApi(1)
	api.Shared.Commands = syncs.NewSemaphore(1)

	// the sleeping children keep the output pipe open after sh is gone
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	if _, err := api.RunCommand(ctx, "sh", "sleep 30 | cat; sleep 30; echo hi"); err == nil {
		t.Fatal("should fail")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("took %v", elapsed)
	}

	// the slot is free again
	if _, err := api.RunCommand(context.Background(), "sh", "true"); err != nil {
		t.Fatal(err)
	}
}

func TestSharedDefaults(t *testing.T) {
	api := &CommonApi{}
	if api.Logger() == nil {
		t.Fatal()
	}
	if api.HTTPClient() == nil {
		t.Fatal()
	}
	if _, ok := api.Shared.GetIcon("time", nil); ok {
		t.Fatal()
	}
}
