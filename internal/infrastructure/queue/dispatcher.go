package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/locauto/rental-system/internal/api/metrics"
	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher routes audit events to a fixed set of workers using
// consistent hashing on the actor id, guaranteeing per-actor event ordering.
// Recording never blocks the request path: a full worker channel drops the
// event with a warning rather than stalling an auth operation.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.AuditTrail.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.Actor)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Str("actor", event.Actor).Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			err := d.repo.Insert(insertCtx, &event)
			cancel()
			if err != nil {
				metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("actor", event.Actor).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit event write failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues("written").Inc()
		}
	}
}
