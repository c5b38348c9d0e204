package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/api/metrics"
	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

const (
	defaultWorkers      = 4
	defaultBuffer       = 256
	defaultWriteTimeout = 5 * time.Second
)

// AccessDispatcher persists access records off the request path. Records are
// routed to a fixed set of workers by hashing resource and id, so writes for
// the same document keep their relative order. Enqueueing never blocks: when a
// worker's channel is full the record is dropped and counted.
type AccessDispatcher struct {
	workers []chan domain.AccessRecord
	service ports.AccessService
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var _ ports.AccessSink = (*AccessDispatcher)(nil)

// NewAccessDispatcher creates a dispatcher with numWorkers workers, each with a
// buffer of bufferSize records. Non-positive values fall back to defaults.
func NewAccessDispatcher(numWorkers, bufferSize int, service ports.AccessService, log zerolog.Logger) *AccessDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	d := &AccessDispatcher{
		workers: make([]chan domain.AccessRecord, numWorkers),
		service: service,
		log:     log,
		timeout: defaultWriteTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AccessRecord, bufferSize)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// once Stop has drained their channel.
func (d *AccessDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record hands rec to its worker without blocking.
func (d *AccessDispatcher) Record(rec domain.AccessRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(rec, "dispatcher stopped")
		return
	}
	idx := d.shardIndex(rec)
	select {
	case d.workers[idx] <- rec:
		metrics.AccessQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.drop(rec, "queue full")
	}
}

// Stop rejects new records and waits for queued ones to be written, or for ctx
// to expire, whichever comes first.
func (d *AccessDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AccessDispatcher) drop(rec domain.AccessRecord, reason string) {
	metrics.AccessRecordsDroppedTotal.Inc()
	d.log.Warn().
		Str("reason", reason).
		Str("resource", string(rec.Resource)).
		Str("resource_id", rec.ResourceID).
		Str("action", string(rec.Action)).
		Msg("access record dropped")
}

// shardIndex maps a record deterministically to a worker index.
func (d *AccessDispatcher) shardIndex(rec domain.AccessRecord) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rec.Resource))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(rec.ResourceID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AccessDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AccessRecord) {
	defer d.wg.Done()
	depth := metrics.AccessQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.write(id, rec)
		}
	}
}

// write persists one record with its own deadline, detached from any request.
// Failures are logged and discarded.
func (d *AccessDispatcher) write(worker int, rec domain.AccessRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.service.Record(ctx, rec)
	metrics.AccessWriteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AccessRecordErrorsTotal.WithLabelValues(string(rec.Resource)).Inc()
		d.log.Error().Err(err).
			Str("user", rec.User).
			Str("resource", string(rec.Resource)).
			Str("resource_id", rec.ResourceID).
			Str("action", string(rec.Action)).
			Int("worker_id", worker).
			Msg("access record write failed")
		return
	}
	metrics.AccessRecordsTotal.WithLabelValues(string(rec.Resource), string(rec.Action)).Inc()
}
