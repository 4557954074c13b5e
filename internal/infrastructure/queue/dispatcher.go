package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	recordTimeout  = 5 * time.Second
)

// AuditDispatcher fans audit entries out to a fixed set of workers, sharded
// by actor id so entries for one actor are persisted in order. Request
// handlers enqueue and move on; persistence never blocks a response.
type AuditDispatcher struct {
	workers  []chan domain.AuditEntry
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

var _ ports.AuditSink = (*AuditDispatcher)(nil)

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers:  make([]chan domain.AuditEntry, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its actor. When the
// worker's buffer is full the entry is dropped with a warning: the audit
// trail is best-effort and must never stall a login.
func (d *AuditDispatcher) Enqueue(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("actor_id", entry.ActorID).
			Str("action", entry.Action).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.record(id, entry)
		}
	}
}

// record persists one entry under its own timeout, detached from the
// dispatcher lifecycle so shutdown never aborts a write in flight.
func (d *AuditDispatcher) record(id int, entry domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := d.recorder.Record(ctx, entry); err != nil {
		d.log.Error().Err(err).
			Str("actor_id", entry.ActorID).
			Str("action", entry.Action).
			Int("worker_id", id).
			Msg("audit entry persistence failed")
	}
}

// drain persists entries still buffered when the dispatcher is stopped, so
// the tail of the audit trail survives shutdown.
func (d *AuditDispatcher) drain(id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.record(id, entry)
		default:
			return
		}
	}
}
