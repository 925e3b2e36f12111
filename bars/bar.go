// Package bars runs the blocks and renders them in the i3bar protocol. The
// bar loop is the only reader of the request queue and the only writer of
// every block's events.
package bars

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/reusee/taibar/blocks"
	"github.com/reusee/taibar/clicks"
	"github.com/reusee/taibar/logs"
	"github.com/reusee/taibar/metrics"
	"github.com/reusee/taibar/vars"
	"github.com/reusee/taibar/widgets"
)

// BlockConfig is one configured block instance.
type BlockConfig interface {
	Name() string
	CommonConfig() blocks.CommonConfig
	Run(api *blocks.CommonApi) blocks.Future
}

type Bar struct {
	settings Settings
	shared   *blocks.SharedConfig
	logger   logs.Logger
	metrics  *metrics.Metrics
	blocks   []*block

	// owned by the Run loop
	queue     *blocks.RequestQueue
	dirty     bool
	coalesced int
}

// maxCoalesced bounds how many requests may be applied before a row is
// written, so steady traffic cannot starve rendering.
const maxCoalesced = 64

type block struct {
	id       int
	name     string
	common   blocks.CommonConfig
	config   BlockConfig
	events   chan blocks.BlockEvent
	widget   *widgets.Widget
	err      error
	showErr  bool
	defaults []clicks.DefaultAction
	finished bool
}

type result struct {
	id  int
	err error
}

func New(
	configs []BlockConfig,
	settings Settings,
	shared *blocks.SharedConfig,
	logger logs.Logger,
	m *metrics.Metrics,
) *Bar {
	bar := &Bar{
		settings: settings,
		shared:   shared,
		logger:   logger,
		metrics:  m,
	}
	for i, config := range configs {
		bar.blocks = append(bar.blocks, &block{
			id:     i,
			name:   config.Name(),
			common: config.CommonConfig(),
			config: config,
			events: make(chan blocks.BlockEvent, settings.EventCapacity),
		})
	}
	return bar
}

// requestCapacity absorbs one burst from every block.
func (b *Bar) requestCapacity() int {
	return vars.FirstNonZero(
		b.settings.RequestCapacity,
		max(64, len(b.blocks)*4),
	)
}

// Run starts every block and renders until ctx is done. Clicks are read
// from in; rows are written to out.
func (b *Bar) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := blocks.NewRequestQueue(b.requestCapacity())
	b.queue = queue

	signals, stopSignals := notifySignals(b.signalNumbers())
	defer stopSignals()

	writer := bufio.NewWriter(out)
	if err := json.NewEncoder(writer).Encode(header{
		Version:     1,
		ClickEvents: true,
	}); err != nil {
		return err
	}
	if _, err := writer.WriteString("[\n"); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	results := make(chan result, len(b.blocks))
	wg := new(sync.WaitGroup)
	defer func() {
		cancel()
		// blocks blocked on a send return once the queue is closed
		queue.Close()
		wg.Wait()
	}()

	for _, blk := range b.blocks {
		api := &blocks.CommonApi{
			ID:       blk.id,
			Shared:   b.shared,
			Events:   blk.events,
			Requests: queue,
			ErrorInterval: vars.FirstNonZero(
				blk.common.ErrorInterval.Duration(),
				b.settings.ErrorInterval,
				blocks.DefaultErrorInterval,
			),
		}
		future := blk.config.Run(api)
		blockCtx := logs.WithBlock(ctx, blk.name, blk.id)
		wg.Add(1)
		b.metrics.Running.Inc()
		go func() {
			defer wg.Done()
			defer b.metrics.Running.Dec()
			results <- result{
				id:  blk.id,
				err: supervise(blockCtx, blk, future),
			}
		}()
	}

	clickEvents := make(chan clickEvent)
	go func() {
		err := readClicks(in, func(ev clickEvent) bool {
			select {
			case clickEvents <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && !errors.Is(err, io.EOF) {
			b.logger.WarnContext(ctx, "read click events", "error", err)
		}
	}()

	for {
		select {

		case req := <-queue.Requests():
			b.applyRequest(ctx, req)

		case res := <-results:
			b.finish(ctx, res)
			b.dirty = true

		case ev := <-clickEvents:
			if b.click(ctx, ev) {
				b.dirty = true
			}

		case sig := <-signals:
			b.signal(ctx, sig)

		case <-ctx.Done():
			return nil
		}

		if b.shouldRender() {
			if err := b.render(writer); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			b.dirty = false
			b.coalesced = 0
		}
	}
}

func (b *Bar) applyRequest(ctx context.Context, req blocks.Request) {
	if b.apply(ctx, req) {
		b.dirty = true
	}
	b.coalesced++
}

// shouldRender coalesces bursts into one row.
func (b *Bar) shouldRender() bool {
	if !b.dirty {
		return false
	}
	return b.queue.Len() == 0 || b.coalesced >= maxCoalesced
}

func supervise(ctx context.Context, blk *block, future blocks.Future) (err error) {
	defer func() {
		if p := recover(); p != nil {
			perr, ok := p.(error)
			if !ok {
				perr = fmt.Errorf("%v", p)
			}
			err = blocks.InBlock(fmt.Errorf("panic: %w", perr), blk.name, blk.id)
		}
	}()
	return future(ctx)
}

func (b *Bar) get(id int) *block {
	if id < 0 || id >= len(b.blocks) {
		return nil
	}
	return b.blocks[id]
}

// apply reports whether the row changed.
func (b *Bar) apply(ctx context.Context, req blocks.Request) bool {
	blk := b.get(req.BlockID)
	if blk == nil {
		b.logger.WarnContext(ctx, "request from unknown block", "id", req.BlockID)
		return false
	}
	b.metrics.Requests.WithLabelValues(blk.name, req.Cmd.Name()).Inc()

	switch cmd := req.Cmd.(type) {
	case blocks.SetWidget:
		widget := cmd.Widget
		blk.widget = &widget
		blk.err = nil
		blk.showErr = false
	case blocks.UnsetWidget:
		blk.widget = nil
		blk.err = nil
		blk.showErr = false
	case blocks.SetError:
		b.metrics.Errors.WithLabelValues(blk.name).Inc()
		b.logger.InfoContext(logs.WithBlock(ctx, blk.name, blk.id), "block error", "error", cmd.Err)
		blk.err = cmd.Err
	case blocks.SetDefaultActions:
		blk.defaults = cmd.Actions
		return false
	}
	return true
}

func (b *Bar) finish(ctx context.Context, res result) {
	blk := b.get(res.id)
	blk.finished = true
	ctx = logs.WithBlock(ctx, blk.name, blk.id)
	if res.err == nil {
		b.logger.InfoContext(ctx, "block finished")
		return
	}
	if ctx.Err() != nil {
		return
	}
	b.metrics.Faults.WithLabelValues(blk.name).Inc()
	b.logger.ErrorContext(ctx, "block failed", "error", res.err)
	blk.err = res.err
}

// click reports whether the row changed.
func (b *Bar) click(ctx context.Context, ev clickEvent) bool {
	id, err := strconv.Atoi(ev.Instance)
	if err != nil {
		return false
	}
	blk := b.get(id)
	if blk == nil {
		return false
	}
	button, ok := clicks.ButtonFromProtocol(ev.Button)
	if !ok {
		return false
	}

	if blk.err != nil {
		if button == clicks.Left {
			blk.showErr = !blk.showErr
			return true
		}
		if blk.finished {
			return false
		}
	}

	outcome := clicks.Resolve(blk.common.Click, blk.defaults, clicks.Click{
		Button:    button,
		Modifiers: ev.Modifiers,
	})
	if outcome.Action != "" {
		b.deliver(ctx, blk, blocks.Action(outcome.Action))
	}
	if outcome.Update {
		b.deliver(ctx, blk, blocks.UpdateRequest)
	}
	return false
}

// deliver waits at most the delivery timeout for the block to take ev.
// Requests keep being applied while it waits.
func (b *Bar) deliver(ctx context.Context, blk *block, ev blocks.BlockEvent) {
	if blk.finished {
		return
	}
	select {
	case blk.events <- ev:
		return
	default:
	}
	var requests <-chan blocks.Request
	if b.queue != nil {
		requests = b.queue.Requests()
	}
	timer := time.NewTimer(b.settings.EventDeliveryTimeout)
	defer timer.Stop()
	for {
		select {
		case blk.events <- ev:
			return
		case req := <-requests:
			b.applyRequest(ctx, req)
		case <-timer.C:
			b.metrics.DroppedEvents.WithLabelValues(blk.name).Inc()
			b.logger.WarnContext(
				logs.WithBlock(ctx, blk.name, blk.id),
				"block does not receive events, dropped",
				"event", ev.String(),
			)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bar) errorWidget(blk *block) widgets.Widget {
	icon, _ := b.shared.GetIcon("error", nil)
	widget := widgets.Widget{
		Icon:  icon,
		Text:  "Error",
		State: widgets.StateCritical,
	}
	if blk.showErr {
		widget.Text = blocks.Message(blk.err)
	}
	return widget
}

func (b *Bar) row() []i3Block {
	row := make([]i3Block, 0, len(b.blocks))
	for _, blk := range b.blocks {
		switch {
		case blk.err != nil:
			row = append(row, toI3Block(blk.name, blk.id, b.errorWidget(blk)))
		case blk.widget != nil:
			row = append(row, toI3Block(blk.name, blk.id, *blk.widget))
		}
	}
	return row
}

func (b *Bar) render(w *bufio.Writer) error {
	bs, err := json.Marshal(b.row())
	if err != nil {
		return err
	}
	if _, err := w.Write(bs); err != nil {
		return err
	}
	if _, err := w.WriteString(",\n"); err != nil {
		return err
	}
	return w.Flush()
}

func (b *Bar) signalNumbers() (ret []int) {
	for _, blk := range b.blocks {
		if blk.common.Signal != nil {
			ret = append(ret, *blk.common.Signal)
		}
	}
	return
}

func (b *Bar) signal(ctx context.Context, sig os.Signal) {
	n, all := blockSignal(sig)
	for _, blk := range b.blocks {
		if all || blk.common.Signal != nil && *blk.common.Signal == n {
			b.deliver(ctx, blk, blocks.UpdateRequest)
		}
	}
}
