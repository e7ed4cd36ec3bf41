package app

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/five82/bookbasket/internal/basket"
)

const diagnosticBuffer = 32

// diagnosticRelay hands reducer diagnostics to the UI over a buffered channel.
// Send runs inside Dispatch and never blocks: when the UI falls behind the
// diagnostic is dropped and counted. It is still in the log.
type diagnosticRelay struct {
	mu      sync.Mutex
	closed  bool
	ch      chan basket.Diagnostic
	dropped atomic.Int64
	logger  *slog.Logger
}

func newDiagnosticRelay(size int, logger *slog.Logger) *diagnosticRelay {
	if size <= 0 {
		size = diagnosticBuffer
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &diagnosticRelay{
		ch:     make(chan basket.Diagnostic, size),
		logger: logger,
	}
}

// Send queues d for the UI. After Close it only counts d as dropped.
func (r *diagnosticRelay) Send(d basket.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.ch <- d:
	default:
		r.dropped.Add(1)
		r.logger.Debug("diagnostic dropped", "diagnostic_id", d.ID.String())
	}
}

// C returns the receive side.
func (r *diagnosticRelay) C() <-chan basket.Diagnostic {
	return r.ch
}

// Close closes the receive side so a reader blocked on C returns. It is safe
// to call more than once.
func (r *diagnosticRelay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.ch)
}

// Dropped reports how many diagnostics did not fit in the buffer.
func (r *diagnosticRelay) Dropped() int64 {
	return r.dropped.Load()
}
