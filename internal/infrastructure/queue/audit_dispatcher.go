package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// AuditDispatcher routes security events to a fixed set of workers using
// consistent hashing on the identity, preserving per-identity ordering.
// Record never blocks: when a worker's buffer is full the event is dropped
// and counted.
type AuditDispatcher struct {
	workers []chan domain.SecurityEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.SecurityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SecurityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// flushes what is already buffered and exits; Wait blocks until they are done.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has exited.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record hands event to the worker responsible for its identity.
func (d *AuditDispatcher) Record(event domain.SecurityEvent) {
	select {
	case d.workers[d.shardIndex(event.Identity)] <- event:
	default:
		d.dropped.Add(1)
		d.log.Warn().
			Str("kind", string(event.Kind)).
			Str("outcome", event.Outcome).
			Msg("audit buffer full, event dropped")
	}
}

// Dropped reports how many events were discarded because a buffer was full.
func (d *AuditDispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Pending reports how many events are buffered across all workers.
func (d *AuditDispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex maps an identity deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(identity string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identity))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SecurityEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case event := <-ch:
			d.persist(ctx, id, event)
		}
	}
}

func (d *AuditDispatcher) drain(ctx context.Context, id int, ch <-chan domain.SecurityEvent) {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-ch:
			d.persist(drainCtx, id, event)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) persist(ctx context.Context, id int, event domain.SecurityEvent) {
	if err := d.repo.InsertEvent(ctx, &event); err != nil {
		d.log.Error().Err(err).
			Str("kind", string(event.Kind)).
			Int("worker_id", id).
			Msg("security event persist failed")
	}
}
