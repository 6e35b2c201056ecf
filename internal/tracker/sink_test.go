package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

// fakeSink records every OnPlay call and fails the first failTimes calls
// with err, succeeding afterward.
type fakeSink struct {
	name      string
	calls     chan PlayRecord
	failTimes int
	err       error
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) OnPlay(ctx context.Context, record PlayRecord) error {
	if s.failTimes > 0 {
		s.failTimes--
		return s.err
	}
	s.calls <- record
	return nil
}

func TestSinkWorker_OfferDropsNewRecordWhenChannelFull(t *testing.T) {
	errCh := make(chan error, 4)
	sink := &fakeSink{name: "test", calls: make(chan PlayRecord, 1)}
	w := newSinkWorker(sink, 1, []time.Duration{time.Millisecond}, errCh, zap.NewNop().Sugar())

	w.ch <- PlayRecord{} // fill the channel directly, bypassing offer's own send
	w.offer(PlayRecord{Song: sampleSongs()[0]})

	select {
	case err := <-errCh:
		var sinkErr *trackerErrors.SinkError
		if !errors.As(err, &sinkErr) {
			t.Fatalf("offer() reported %v, want a *SinkError", err)
		}
	default:
		t.Fatal("offer() on a full channel: want a SinkError reported, got none")
	}

	if len(w.ch) != 1 {
		t.Fatalf("channel length = %d, want 1 (new record dropped, old one kept)", len(w.ch))
	}
}

func TestSinkWorker_DeliverSucceedsWithoutExhaustingBackoff(t *testing.T) {
	errCh := make(chan error, 4)
	sink := &fakeSink{name: "test", calls: make(chan PlayRecord, 1)}
	w := newSinkWorker(sink, 4, []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}, errCh, zap.NewNop().Sugar())

	w.deliver(context.Background(), PlayRecord{Song: sampleSongs()[0]})

	select {
	case <-sink.calls:
	default:
		t.Fatal("deliver(): sink never received the record")
	}
	select {
	case err := <-errCh:
		t.Fatalf("deliver() succeeded but still reported an error: %v", err)
	default:
	}
}

func TestSinkWorker_DeliverReportsRetriesExhausted(t *testing.T) {
	errCh := make(chan error, 4)
	sink := &fakeSink{name: "test", calls: make(chan PlayRecord, 1), failTimes: 3, err: errors.New("boom")}
	w := newSinkWorker(sink, 4, []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}, errCh, zap.NewNop().Sugar())

	w.deliver(context.Background(), PlayRecord{})

	select {
	case <-sink.calls:
		t.Fatal("deliver(): sink should never have succeeded")
	default:
	}

	select {
	case err := <-errCh:
		var sinkErr *trackerErrors.SinkError
		if !errors.As(err, &sinkErr) {
			t.Fatalf("deliver() reported %v, want a *SinkError", err)
		}
	default:
		t.Fatal("deliver(): want a retries-exhausted SinkError reported, got none")
	}
}

func TestSinkWorker_RunDrainsUntilContextCancelled(t *testing.T) {
	errCh := make(chan error, 4)
	sink := &fakeSink{name: "test", calls: make(chan PlayRecord, 4)}
	w := newSinkWorker(sink, 4, []time.Duration{time.Millisecond}, errCh, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	w.offer(PlayRecord{Song: sampleSongs()[0]})

	select {
	case <-sink.calls:
	case <-time.After(time.Second):
		t.Fatal("run(): offered record was never delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() returned %v after cancellation, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run(): did not return after its context was cancelled")
	}
}
