package statsd

/*

Copyright (c) 2023 Charles Lirsac

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// AsyncTransport decorates another transport with a bounded queue and a
// background send goroutine, so Emit never performs I/O on the caller's
// goroutine.
//
// When the queue is full, batches are dropped and counted as lost rather
// than blocking the caller; lost batches are reported periodically via the
// logger. Sampling and serialization are unaffected: the client core is
// transport-agnostic, only delivery changes.
type AsyncTransport struct {
	inner  Transport
	logger Logger

	queue    chan []string
	shutdown chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool

	lostPeriod, lostOverall int64
}

var _ Transport = (*AsyncTransport)(nil)

// NewAsyncTransport wraps inner and starts the background delivery
// goroutines.
func NewAsyncTransport(inner Transport, options ...AsyncOption) *AsyncTransport {
	opts := AsyncOptions{
		QueueCapacity:  DefaultQueueCapacity,
		ReportInterval: DefaultReportInterval,
		Logger:         log.New(os.Stderr, DefaultLogPrefix, log.LstdFlags),
	}
	for _, option := range options {
		option(&opts)
	}

	t := &AsyncTransport{
		inner:    inner,
		logger:   opts.Logger,
		queue:    make(chan []string, opts.QueueCapacity),
		shutdown: make(chan struct{}),
	}

	t.wg.Add(1)
	go t.sendLoop()

	if opts.ReportInterval > 0 {
		t.wg.Add(1)
		go t.reportLoop(opts.ReportInterval)
	}

	return t
}

// Emit queues the batch for delivery. It never blocks: when the queue is
// full the batch is dropped and counted as lost.
//
// Returns ErrTransportClosed after Close.
func (t *AsyncTransport) Emit(packets []string) error {
	if t.closed.Load() {
		return ErrTransportClosed.New("emit on closed transport")
	}

	select {
	case t.queue <- packets:
	default:
		atomic.AddInt64(&t.lostPeriod, 1)
		atomic.AddInt64(&t.lostOverall, 1)
	}

	return nil
}

// Close stops the delivery goroutines, draining any queued batches into
// the wrapped transport, then closes it. Idempotent.
func (t *AsyncTransport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}

	close(t.shutdown)
	t.wg.Wait()

	return t.inner.Close()
}

// GetLostPackets returns the number of batches dropped on queue overflow
// during the transport's lifetime.
func (t *AsyncTransport) GetLostPackets() int64 {
	return atomic.LoadInt64(&t.lostOverall)
}

// sendLoop forwards queued batches to the wrapped transport until
// shutdown, then drains whatever is left.
func (t *AsyncTransport) sendLoop() {
	defer t.wg.Done()

	for {
		select {
		case batch := <-t.queue:
			t.forward(batch)
		case <-t.shutdown:
			for {
				select {
				case batch := <-t.queue:
					t.forward(batch)
				default:
					return
				}
			}
		}
	}
}

func (t *AsyncTransport) forward(batch []string) {
	if err := t.inner.Emit(batch); err != nil {
		t.logger.Printf("error emitting batch: %s", err)
	}
}

// reportLoop periodically reports the number of batches lost.
func (t *AsyncTransport) reportLoop(interval time.Duration) {
	defer t.wg.Done()

	reportTicker := time.NewTicker(interval)
	defer reportTicker.Stop()

	for {
		select {
		case <-t.shutdown:
			return
		case <-reportTicker.C:
			lostPeriod := atomic.SwapInt64(&t.lostPeriod, 0)
			if lostPeriod > 0 {
				t.logger.Printf("%d batches lost (queue overflow)", lostPeriod)
			}
		}
	}
}
