package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/tacogips/rptnew/internal/debug"
)

// Dispatcher runs queued tasks one at a time on its own goroutine, in
// submission order.
type Dispatcher struct {
	ctx  context.Context
	sink ErrorSink

	mu     sync.Mutex
	queue  []func(ctx context.Context) error
	wake   chan struct{}
	closed bool
	done   chan struct{}
}

// NewDispatcher starts a dispatcher. Tasks receive ctx.
func NewDispatcher(ctx context.Context, sink ErrorSink) *Dispatcher {
	d := &Dispatcher{
		ctx:  ctx,
		sink: sink,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go d.loop()
	return d
}

// AsyncExec queues fn and returns without waiting for it.
func (d *Dispatcher) AsyncExec(fn func(ctx context.Context) error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.report(NewHostError(HostClosed, "task submitted after host shutdown", "", nil))
		return
	}
	d.queue = append(d.queue, fn)
	select {
	case d.wake <- struct{}{}:
	default:
	}
	d.mu.Unlock()
}

// Close stops accepting tasks and waits until queued tasks have run.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.wake)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for {
		for {
			fn, ok := d.next()
			if !ok {
				break
			}
			d.run(fn)
		}
		if _, open := <-d.wake; !open {
			// Drain tasks queued between the last pass and Close.
			for fn, ok := d.next(); ok; fn, ok = d.next() {
				d.run(fn)
			}
			return
		}
	}
}

func (d *Dispatcher) next() (func(ctx context.Context) error, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil, false
	}
	fn := d.queue[0]
	d.queue = d.queue[1:]
	return fn, true
}

func (d *Dispatcher) run(fn func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			d.report(NewHostError(HostTaskPanicked, fmt.Sprintf("task panicked: %v", r), "", nil))
		}
	}()

	debug.Debug("[host] Running UI task")
	if err := fn(d.ctx); err != nil {
		d.report(err)
	}
}

func (d *Dispatcher) report(err error) {
	if d.sink != nil {
		d.sink.Report(err)
	}
}
