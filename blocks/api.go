package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/widgets"
)

// CommonApi is what a block instance uses to talk to the bar.
//
// Events is owned by this instance alone; the bar holds the send side and
// never closes it while the block runs. Requests is shared by all blocks.
type CommonApi struct {
	ID            int
	Shared        *SharedConfig
	Events        <-chan BlockEvent
	Requests      *RequestQueue
	ErrorInterval time.Duration
}

func (a *CommonApi) send(ctx context.Context, cmd RequestCmd) error {
	if err := a.Requests.Send(ctx, Request{
		BlockID: a.ID,
		Cmd:     cmd,
	}); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return nil
}

// SetWidget sends the widget to be displayed.
func (a *CommonApi) SetWidget(ctx context.Context, widget widgets.Widget) error {
	return a.send(ctx, SetWidget{
		Widget: widget,
	})
}

// Hide hides the block. Send a new widget to make it visible again.
func (a *CommonApi) Hide(ctx context.Context) error {
	return a.send(ctx, UnsetWidget{})
}

// SetError sends the error to be displayed.
func (a *CommonApi) SetError(ctx context.Context, err error) error {
	return a.send(ctx, SetError{
		Err: err,
	})
}

func (a *CommonApi) SetDefaultActions(ctx context.Context, actions []clicks.DefaultAction) error {
	return a.send(ctx, SetDefaultActions{
		Actions: actions,
	})
}

// Event receives the next event, such as a click action or an update request.
//
// Call it regularly: the event channel is small, and a block that stops
// receiving makes the bar drop its events.
//
// Event is cancel safe. If ctx is done first, no event is consumed, and the
// next call returns the event that was pending.
//
// Event panics with ErrEventStreamEnded if the bar closed the channel.
func (a *CommonApi) Event(ctx context.Context) (BlockEvent, error) {
	select {
	case event, ok := <-a.Events:
		if !ok {
			panic(fmt.Errorf("block #%d: %w", a.ID, ErrEventStreamEnded))
		}
		return event, nil
	case <-ctx.Done():
		return BlockEvent{}, ctx.Err()
	}
}

// EventWithin waits at most timeout for the next event. ok is false when the
// timeout elapsed first.
func (a *CommonApi) EventWithin(ctx context.Context, timeout time.Duration) (event BlockEvent, ok bool, err error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	event, err = a.Event(waitCtx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return BlockEvent{}, false, nil
		}
		return BlockEvent{}, false, err
	}
	return event, true, nil
}

// WaitForUpdateRequest waits for the next update request, discarding actions.
// An update request comes from a click bound with update, or a signal.
//
// It is cancel safe for the same reason Event is.
func (a *CommonApi) WaitForUpdateRequest(ctx context.Context) error {
	for {
		event, err := a.Event(ctx)
		if err != nil {
			return err
		}
		if event.IsUpdateRequest() {
			return nil
		}
	}
}

// WaitForUpdateRequestWithin returns after timeout or on an update request,
// whichever comes first.
func (a *CommonApi) WaitForUpdateRequestWithin(ctx context.Context, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := a.WaitForUpdateRequest(waitCtx)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *CommonApi) GetIcon(name string) (string, error) {
	icon, ok := a.Shared.GetIcon(name, nil)
	if !ok {
		return "", fmt.Errorf("icon '%s': %w", name, ErrIconNotFound)
	}
	return icon, nil
}

func (a *CommonApi) GetIconInProgression(name string, value float64) (string, error) {
	icon, ok := a.Shared.GetIcon(name, &value)
	if !ok {
		return "", fmt.Errorf("icon '%s': %w", name, ErrIconNotFound)
	}
	return icon, nil
}
