package audit

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-localize/internal/logging"
	"github.com/goliatone/go-localize/pkg/interfaces"
)

// DefaultQueueSize bounds the number of records waiting to be written.
const DefaultQueueSize = 256

// defaultWriteTimeout bounds each background store write.
const defaultWriteTimeout = 5 * time.Second

// Recorder writes audit records asynchronously. Schedule never blocks the
// calling operation: records are queued and written by a background worker,
// and a full queue drops the record with a warning rather than stalling the
// caller.
type Recorder struct {
	store  Store
	sinks  []Sink
	logger interfaces.Logger

	mu     sync.Mutex
	closed bool
	queue  chan *Record
	done   chan struct{}
}

// Sink receives a copy of every record after it is queued, letting callers
// fan audit events out to activity streams or notification channels.
type Sink interface {
	Record(ctx context.Context, record *Record) error
}

// RecorderOption customises a Recorder.
type RecorderOption func(*recorderOptions)

type recorderOptions struct {
	queueSize int
	logger    interfaces.Logger
	sinks     []Sink
}

// WithQueueSize overrides the pending-record queue capacity.
func WithQueueSize(size int) RecorderOption {
	return func(o *recorderOptions) {
		if size > 0 {
			o.queueSize = size
		}
	}
}

// WithRecorderLogger injects the recorder logger.
func WithRecorderLogger(logger interfaces.Logger) RecorderOption {
	return func(o *recorderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSink registers an additional record sink.
func WithSink(sink Sink) RecorderOption {
	return func(o *recorderOptions) {
		if sink != nil {
			o.sinks = append(o.sinks, sink)
		}
	}
}

// NewRecorder starts the background writer over the supplied store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	options := &recorderOptions{
		queueSize: DefaultQueueSize,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(options)
	}

	r := &Recorder{
		store:  store,
		sinks:  options.sinks,
		logger: options.logger,
		queue:  make(chan *Record, options.queueSize),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Schedule queues a record for background persistence. The record is copied,
// so callers may keep mutating their instance. Returns false when the record
// was dropped, either because the queue is full or the recorder is closed.
func (r *Recorder) Schedule(record *Record) bool {
	if record == nil {
		return false
	}
	copied := record.Clone()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	if copied.Source == "" {
		copied.Source = Source
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.logger.Warn("audit recorder closed, dropping record",
			"operation", copied.Operation,
			"username", copied.Username,
		)
		return false
	}

	select {
	case r.queue <- copied:
		return true
	default:
		r.logger.Warn("audit queue full, dropping record",
			"operation", copied.Operation,
			"username", copied.Username,
		)
		return false
	}
}

// Close stops accepting records, drains the queue, and waits for the worker
// to finish.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for record := range r.queue {
		r.write(record)
	}
}

// write persists one record. Failures are logged and swallowed; the audit
// trail is best-effort and must never take an operation down with it.
func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
	defer cancel()

	stored, err := r.store.Insert(ctx, record)
	if err != nil {
		r.logger.Error("audit record write failed",
			"operation", record.Operation,
			"username", record.Username,
			"error", err,
		)
		return
	}
	for _, sink := range r.sinks {
		if err := sink.Record(ctx, stored); err != nil {
			r.logger.Warn("audit sink failed", "operation", stored.Operation, "error", err)
		}
	}
}
