package refresh

import "context"

// SerialDispatcher runs queued functions one at a time on a single goroutine.
// It stands in for a UI event loop when there is no terminal.
type SerialDispatcher struct {
	queue chan func()
	done  <-chan struct{}
}

func NewSerialDispatcher(ctx context.Context) *SerialDispatcher {
	d := &SerialDispatcher{
		queue: make(chan func(), 16),
		done:  ctx.Done(),
	}
	go d.run()
	return d
}

func (d *SerialDispatcher) Dispatch(f func()) {
	select {
	case d.queue <- f:
	case <-d.done:
	}
}

func (d *SerialDispatcher) run() {
	for {
		select {
		case <-d.done:
			return
		case f := <-d.queue:
			f()
		}
	}
}
