package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"

	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

// Sink receives completed PlayRecords. Sinks are treated as fallible and
// slow (spec §4.6): a sink failure never stops the Tracker Loop, and a slow
// sink is isolated behind its own bounded channel so it can't stall the
// others.
type Sink interface {
	Name() string
	OnPlay(ctx context.Context, record PlayRecord) error
}

// sinkWorker owns one sink's delivery channel and retry loop. Each
// sinkWorker runs on its own goroutine, managed by the Tracker's
// errgroup.Group, so a sink whose OnPlay blocks indefinitely only ever
// stalls its own queue.
type sinkWorker struct {
	sink    Sink
	ch      chan PlayRecord
	backoff []time.Duration
	errCh   chan<- error
	log     *zap.SugaredLogger
}

func newSinkWorker(sink Sink, capacity int, backoff []time.Duration, errCh chan<- error, log *zap.SugaredLogger) *sinkWorker {
	return &sinkWorker{
		sink:    sink,
		ch:      make(chan PlayRecord, capacity),
		backoff: backoff,
		errCh:   errCh,
		log:     log,
	}
}

// offer enqueues record without blocking the poll loop. When the channel
// is full, the new record is dropped rather than the oldest queued one —
// historical completeness outweighs recency under overload (spec §5) — and
// a SinkError surfaces on errCh for observability.
func (w *sinkWorker) offer(record PlayRecord) {
	select {
	case w.ch <- record:
	default:
		w.log.Warnw("sink channel full, dropping record", "sink", w.sink.Name(), "songID", record.PlayData.SongID)
		w.reportNonBlocking(trackerErrors.NewSinkError(nil, trackerErrors.ErrorCodeSinkChannelFull, "sink channel full, record dropped").
			WithSinkName(w.sink.Name()))
	}
}

// run drains ch, delivering each record with retry/backoff, until ctx is
// done. It returns nil on clean shutdown; run is intended to be driven by
// an errgroup.Group, which only needs a non-nil return to treat it as a
// failure, and this worker never fails the group — delivery failures are
// reported on errCh instead.
func (w *sinkWorker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case record := <-w.ch:
			w.deliver(ctx, record)
		}
	}
}

// deliver attempts OnPlay once per entry in w.backoff, sleeping the
// configured duration before each attempt (spec §4.6: "50ms -> 100ms ->
// 200ms, three attempts"). It gives up and reports a SinkError once every
// attempt has failed.
func (w *sinkWorker) deliver(ctx context.Context, record PlayRecord) {
	var lastErr error

	for attempt, delay := range w.backoff {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := w.sink.OnPlay(ctx, record); err == nil {
			return
		} else {
			lastErr = err
			w.log.Warnw("sink delivery attempt failed", "sink", w.sink.Name(), "attempt", attempt+1, "error", err)
		}
	}

	w.reportNonBlocking(trackerErrors.NewRetriesExhaustedError(w.sink.Name(), len(w.backoff), lastErr))
}

// reportNonBlocking sends err on errCh without blocking the sink's own
// delivery loop if the error channel's reader has fallen behind.
func (w *sinkWorker) reportNonBlocking(err error) {
	select {
	case w.errCh <- err:
	default:
	}
}
