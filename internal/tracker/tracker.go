// Package tracker implements the Tracker Loop: it owns the resolved
// OffsetsCollection and the Game State Detector, drives the poll tick,
// materializes PlayRecords on Result transitions, fans them out to sinks,
// and re-runs discovery after the target process is lost and reappears
// (spec §4.6).
package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/detector"
	"github.com/yasora/reflux/internal/discovery"
	trackerErrors "github.com/yasora/reflux/pkg/errors"
	"github.com/yasora/reflux/pkg/options"
)

// Reader is the process-attached handle the Tracker Loop drives discovery
// and polling through. It is the method subset internal/memory.Reader and
// internal/discovery.MemoryReader share, plus Close, so the loop can
// release a lost process's handle before reacquiring a new one.
type Reader interface {
	ModuleBase() uintptr
	Read(address uintptr, n int) ([]byte, error)
	Close() error
}

// Opener attaches a fresh Reader to the target process, used both for the
// Tracker Loop's initial attach and for re-discovery after the target
// process disappears and comes back.
type Opener func() (Reader, error)

// Tracker drives one target's poll loop end to end. Construct with New and
// run with Run; Run blocks until its context is cancelled or Stop is
// called.
type Tracker struct {
	opener Opener
	opts   *options.Options
	log    *zap.SugaredLogger

	errCh   chan error
	workers []*sinkWorker

	stopOnce sync.Once
	stop     chan struct{}

	// reacquireWait bounds how long Run sleeps between attempts to reopen
	// the target process once it's been lost. Exposed as a field, not a
	// constant, purely so tests can shrink it.
	reacquireWait time.Duration
}

// New constructs a Tracker. opener is called once at Run's start and again
// every time re-discovery is triggered; sinks receive every materialized
// PlayRecord independently of one another.
func New(opener Opener, opts *options.Options, sinks []Sink, log *zap.SugaredLogger) *Tracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	errCh := make(chan error, 32)
	workers := make([]*sinkWorker, 0, len(sinks))
	for _, s := range sinks {
		workers = append(workers, newSinkWorker(s, opts.SinkOptions.ChannelCapacity, opts.SinkOptions.RetryBackoff, errCh, log))
	}

	return &Tracker{
		opener:        opener,
		opts:          opts,
		log:           log,
		errCh:         errCh,
		workers:       workers,
		stop:          make(chan struct{}),
		reacquireWait: opts.PollInterval,
	}
}

// Errors returns the secondary channel sink failures are reported on
// (spec §4.6: "sink errors ... are surfaced on a secondary channel for
// observability"). Never blocks the poll loop — a slow reader of this
// channel just misses some error reports, per sinkWorker.reportNonBlocking.
func (t *Tracker) Errors() <-chan error {
	return t.errCh
}

// Stop requests cooperative shutdown. Idempotent. Run returns once the
// current poll tick (if any) finishes.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *Tracker) stopRequested() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// Run attaches to the target process, resolves the tracked structures via
// discovery, and polls until ctx is cancelled or Stop is called. Run owns
// the sink worker pool's lifetime: workers start before the first poll and
// are cancelled, via a context derived from ctx, when Run returns.
func (t *Tracker) Run(ctx context.Context) error {
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	g, gctx := errgroup.WithContext(workerCtx)
	for _, w := range t.workers {
		w := w
		g.Go(func() error { return w.run(gctx) })
	}

	reader, songs, offsets, err := t.acquire(ctx)
	if err != nil {
		t.Stop()
		cancelWorkers()
		_ = g.Wait()
		return err
	}

	det := detector.New(reader, detectorOffsets(offsets), t.opts.ResultDebounce)
	consecutiveErrors := 0

	ticker := time.NewTicker(t.opts.PollInterval)
	defer ticker.Stop()

	for {
		if t.stopRequested() || ctx.Err() != nil {
			_ = reader.Close()
			det.Stop()
			cancelWorkers()
			_ = g.Wait()
			return nil
		}

		select {
		case <-ctx.Done():
		case <-t.stop:
		case <-ticker.C:
		}
		if t.stopRequested() || ctx.Err() != nil {
			continue
		}

		_, emission, terr := det.Tick(time.Now())
		if terr != nil {
			consecutiveErrors++
			t.log.Warnw("poll tick failed", "consecutiveErrors", consecutiveErrors, "error", terr)

			if consecutiveErrors >= t.opts.ReacquireThreshold {
				t.log.Warnw("reacquire threshold exceeded, re-running discovery", "threshold", t.opts.ReacquireThreshold)
				_ = reader.Close()

				newReader, newSongs, newOffsets, rerr := t.acquire(ctx)
				if rerr != nil {
					cancelWorkers()
					_ = g.Wait()
					return rerr
				}

				reader, songs, offsets = newReader, newSongs, newOffsets
				det = detector.New(reader, detectorOffsets(offsets), t.opts.ResultDebounce)
				consecutiveErrors = 0
			}
			continue
		}

		consecutiveErrors = 0

		if emission == nil {
			continue
		}

		record := buildPlayRecord(emission, songs)
		for _, w := range t.workers {
			w.offer(record)
		}
	}
}

// acquire opens a Reader and runs discovery against it, retrying the open
// (not the discovery) at t.reacquireWait intervals while the target
// process is absent, until it succeeds or the caller stops/cancels.
func (t *Tracker) acquire(ctx context.Context) (Reader, []codec.Song, discovery.OffsetsCollection, error) {
	for {
		if t.stopRequested() {
			return nil, nil, discovery.OffsetsCollection{}, trackerErrors.NewCancelledError()
		}
		if ctx.Err() != nil {
			return nil, nil, discovery.OffsetsCollection{}, ctx.Err()
		}

		reader, err := t.opener()
		if err != nil {
			t.log.Debugw("target process not yet available, retrying", "error", err)
			select {
			case <-ctx.Done():
				return nil, nil, discovery.OffsetsCollection{}, ctx.Err()
			case <-t.stop:
				return nil, nil, discovery.OffsetsCollection{}, trackerErrors.NewCancelledError()
			case <-time.After(t.reacquireWait):
			}
			continue
		}

		result, err := discovery.Discover(reader, t.opts.DisplacementTable, t.opts.EnableSignatureFallback, t.log)
		if err != nil {
			_ = reader.Close()
			return nil, nil, discovery.OffsetsCollection{}, err
		}

		return reader, result.SongList, result.Offsets, nil
	}
}

func detectorOffsets(o discovery.OffsetsCollection) detector.Offsets {
	return detector.Offsets{
		CurrentSong:  o.CurrentSong,
		PlaySettings: o.PlaySettings,
		PlayData:     o.PlayData,
		JudgeData:    o.JudgeData,
	}
}
