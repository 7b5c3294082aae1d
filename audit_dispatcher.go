package goAuthz

import (
	"context"
	"sync"
	"sync/atomic"
)

// AuditDispatcher is an AuditSink that queues events and forwards them to
// another sink from one goroutine, so slow sinks never sit on the request
// path. Close drains the queue.
type AuditDispatcher struct {
	cfg       AuditConfig
	sink      AuditSink
	metrics   *Metrics
	ch        chan AuditEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64

	// mu is held for reading across every send so Close cannot finish the
	// drain while an event is in flight.
	mu     sync.RWMutex
	closed bool
}

// NewAuditDispatcher starts a dispatcher in front of sink. It returns nil
// when cfg.Enabled is false; a nil dispatcher drops everything silently.
// m may be nil.
func NewAuditDispatcher(cfg AuditConfig, sink AuditSink, m *Metrics) *AuditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &AuditDispatcher{
		cfg:     cfg,
		sink:    sink,
		metrics: m,
		ch:      make(chan AuditEvent, cfg.BufferSize),
		done:    make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *AuditDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.ch:
			d.sink.Emit(context.Background(), event)
		case <-d.done:
			for {
				select {
				case event := <-d.ch:
					d.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit queues event. With DropIfFull it never blocks; otherwise it waits
// for queue space or ctx. Events that are not queued, including those
// emitted after Close, count as dropped.
func (d *AuditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop()
		return
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- event:
		default:
			d.drop()
		}
		return
	}

	select {
	case d.ch <- event:
	case <-ctx.Done():
		d.drop()
	}
}

func (d *AuditDispatcher) drop() {
	d.dropped.Add(1)
	d.metrics.Inc(MetricAuditDropped)
}

// Close stops accepting events and waits until queued ones reach the sink.
// It is idempotent.
func (d *AuditDispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.done)
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped reports how many events never reached the queue.
func (d *AuditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
