package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes feed entries to a fixed set of workers using consistent
// hashing on the user id, guaranteeing per-user ordering.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed; Enqueue holds it for reading while sending.
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Stop.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the queues and waits for the workers to record every buffered
// entry. Entries enqueued afterwards are dropped. If ctx ends first, Stop
// returns its error and the remaining entries are abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue hands an entry to the worker responsible for its user. It never
// blocks the caller: when that worker's buffer is full the entry is dropped.
func (d *Dispatcher) Enqueue(in ports.ActivityInput) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("user_id", in.UserID).Msg("activity dispatcher stopped, entry dropped")
		return
	}

	idx := d.shardIndex(in.UserID)
	select {
	case d.workers[idx] <- in:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("user_id", in.UserID).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.ActivityInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for in := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.record(id, in)
	}
}

func (d *Dispatcher) record(worker int, in ports.ActivityInput) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := d.service.Record(ctx, in); err != nil {
		d.log.Error().Err(err).
			Str("user_id", in.UserID).
			Str("type", string(in.Type)).
			Int("worker_id", worker).
			Msg("activity processing failed")
	}
}
