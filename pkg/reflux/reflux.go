// Package reflux is the public facade over the memory-tracking core: it
// wires the Process Reader, Offset Discovery, Game State Detector, and
// Tracker Loop together behind the small surface an embedder actually
// needs — attach to a process, discover its structures (automatically or
// with a human in the loop), and run the poll loop until stopped.
package reflux

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yasora/reflux/internal/discovery"
	"github.com/yasora/reflux/internal/memory"
	"github.com/yasora/reflux/internal/tracker"
	"github.com/yasora/reflux/pkg/errors"
	"github.com/yasora/reflux/pkg/logger"
	"github.com/yasora/reflux/pkg/options"
)

// Handle is an attached process the core can discover structures in and
// poll. It is the Process Reader (spec §4.1) under its public name.
type Handle = memory.Reader

// OffsetsCollection holds the seven absolute addresses Discover resolves.
type OffsetsCollection = discovery.OffsetsCollection

// Candidate is one anchor-resolution candidate, offered to a Chooser when
// automatic discovery leaves an anchor unresolved.
type Candidate = discovery.Candidate

// Chooser picks which candidate to promote for an anchor DiscoverInteractive
// could not resolve automatically.
type Chooser = discovery.Chooser

// Sink receives completed PlayRecords from a running Instance.
type Sink = tracker.Sink

// PlayRecord is one completed play, joined with its song metadata.
type PlayRecord = tracker.PlayRecord

// DiscoveryResult bundles the resolved OffsetsCollection with the SongList
// decoded along the way.
type DiscoveryResult = discovery.Result

// Open attaches to the first running process named processName and
// resolves its main module's base address. The returned Handle is ready
// for Discover/DiscoverInteractive or for building an Instance.
func Open(processName string, log *zap.SugaredLogger) (*Handle, error) {
	return memory.Open(&memory.Config{ProcessName: processName, Logger: log})
}

// Discover runs one-shot, fully automatic discovery against an
// already-open Handle (spec §6: `discover(handle)`). Any anchor that
// fails to resolve ends the attempt with a DiscoveryError.
func Discover(handle *Handle, opts *options.Options) (DiscoveryResult, error) {
	return discovery.Discover(handle, opts.DisplacementTable, opts.EnableSignatureFallback, nil)
}

// DiscoverInteractive runs discovery the same way as Discover, but calls
// chooser for any anchor whose automatic resolution is ambiguous or fails
// outright, rather than returning an error (spec §6:
// `discover_interactive(handle, chooser)`).
func DiscoverInteractive(handle *Handle, opts *options.Options, chooser Chooser) (DiscoveryResult, error) {
	return discovery.DiscoverInteractive(handle, opts.DisplacementTable, opts.EnableSignatureFallback, nil, chooser)
}

// validateConfig checks every independent precondition NewInstance
// requires and accumulates every failure into one error via multierr,
// rather than returning only the first problem found — an embedder
// wiring up several sinks at once wants to see every misconfigured one in
// a single error, not fix-and-retry-and-discover-the-next one at a time.
func validateConfig(opts *options.Options, sinks []Sink) error {
	var err error

	if opts.ProcessName == "" {
		err = multierr.Append(err, errors.NewRequiredFieldError("processName"))
	}

	seen := make(map[string]bool, len(sinks))
	for i, s := range sinks {
		name := s.Name()
		if name == "" {
			err = multierr.Append(err, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "sink has an empty name").
				WithField("sinks").WithDetail("index", i))
			continue
		}
		if seen[name] {
			err = multierr.Append(err, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "duplicate sink name").
				WithField("sinks").WithDetail("name", name))
			continue
		}
		seen[name] = true
	}

	return err
}

// Instance is the primary entry point for embedding the tracker: attach
// it to a target process, register sinks, and Run it until Stop is
// called or its context is cancelled.
//
// Instance mirrors the shape of a thin facade over one long-running
// subsystem — construction validates and resolves configuration, every
// other method delegates straight to the owned Tracker.
type Instance struct {
	tracker *tracker.Tracker
	options *options.Options
	log     *zap.SugaredLogger
}

// NewInstance constructs an Instance for the named service (used only to
// tag its logger), applying opts over the package defaults. sinks receive
// every materialized PlayRecord independently of one another; an Instance
// with no sinks still runs the detector and discards every emission,
// which is a valid (if useless) configuration, not an error.
func NewInstance(service string, sinks []Sink, opts ...options.OptionFunc) (*Instance, error) {
	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	if err := validateConfig(&resolved, sinks); err != nil {
		return nil, err
	}

	log := logger.New(service)

	opener := func() (tracker.Reader, error) {
		return memory.Open(&memory.Config{ProcessName: resolved.ProcessName, Logger: log})
	}

	return &Instance{
		tracker: tracker.New(opener, &resolved, sinks, log),
		options: &resolved,
		log:     log,
	}, nil
}

// Run attaches to the target process, resolves its structures, and polls
// until ctx is cancelled or Stop is called (spec §6:
// `run(handle, offsets, sink, stop_signal)` — Instance owns the handle
// and re-acquires it internally rather than taking one as a parameter, so
// it can transparently re-discover after the target process restarts).
func (i *Instance) Run(ctx context.Context) error {
	return i.tracker.Run(ctx)
}

// Errors returns the channel sink delivery failures are reported on.
func (i *Instance) Errors() <-chan error {
	return i.tracker.Errors()
}

// Stop requests cooperative shutdown. Idempotent; Run returns once the
// current poll tick finishes.
func (i *Instance) Stop() {
	i.tracker.Stop()
}

// Close stops the Instance and blocks briefly for Run to notice, so a
// deferred Close from the same goroutine that isn't also waiting on Run's
// return value still gives the poll loop a chance to release its process
// handle before the process exits.
func (i *Instance) Close() error {
	i.tracker.Stop()
	time.Sleep(i.options.PollInterval)
	return nil
}
