// Package options provides data structures and functions for configuring
// the tracker. It defines the parameters that control how the core attaches
// to the target process, how fast it polls, how it debounces detector
// transitions, and how sinks are buffered and retried.
package options

import (
	"strings"
	"time"

	"github.com/yasora/reflux/internal/layout"
)

// sinkOptions defines configurable parameters for the tracker's sink
// delivery pipeline: how many in-flight PlayRecords a slow sink can be
// behind before new records are dropped, and the retry/backoff schedule
// applied when a sink's OnPlay call returns an error.
type sinkOptions struct {
	// Defines the maximum number of buffered PlayRecords per sink. When the
	// buffer is full a new record is dropped and the queued ones are kept.
	//
	//  - Default: 16
	ChannelCapacity int `json:"channelCapacity"`

	// Defines the delays of a sink's delivery attempts: one OnPlay attempt
	// per entry, each preceded by that entry's delay, in order. Once every
	// attempt has failed the record is dropped and a SinkError is reported.
	//
	// Default: [50ms, 100ms, 200ms]
	RetryBackoff []time.Duration `json:"retryBackoff"`
}

// Options defines the configuration parameters for the tracker core. It
// controls which process to attach to, how often to poll it, and how the
// detector and sinks behave.
type Options struct {
	// Names the target process to attach to, by executable name (e.g.
	// "bm2dx.exe"). Required; there is no default.
	//
	// Default: ""
	ProcessName string `json:"processName"`

	// Defines how often the tracker polls the target process for state
	// changes.
	//
	// Default: 100ms
	PollInterval time.Duration `json:"pollInterval"`

	// Defines how many consecutive poll errors the tracker tolerates
	// before discarding its resolved offsets and re-running discovery.
	//
	// Default: 10
	ReacquireThreshold int `json:"reacquireThreshold"`

	// Defines the window within which a result identical to the last
	// emitted one is suppressed, preventing the same result screen from
	// being reported twice across two adjacent polls.
	//
	// Default: 1s
	ResultDebounce time.Duration `json:"resultDebounce"`

	// Enables the byte-signature scanning fallback for the SongList anchor
	// when its primary anchored scan finds nothing; no other anchor uses
	// it. Off by default because signature tables are the anchor most
	// likely to drift across target versions.
	//
	// Default: false
	EnableSignatureFallback bool `json:"enableSignatureFallback"`

	// Supplies the relative-displacement constants discovery uses once
	// it has resolved one anchor absolutely. Embedders tracking a
	// non-reference build of the target process can override this with
	// their own measured table.
	//
	// Default: layout.DefaultDisplacements()
	DisplacementTable layout.DisplacementTable `json:"-"`

	// Configures sink buffering and retry behavior.
	SinkOptions *sinkOptions `json:"sinkOptions"`
}

// OptionFunc is a function type that modifies the tracker's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.ProcessName = opts.ProcessName
		o.PollInterval = opts.PollInterval
		o.ReacquireThreshold = opts.ReacquireThreshold
		o.ResultDebounce = opts.ResultDebounce
		o.EnableSignatureFallback = opts.EnableSignatureFallback
		o.DisplacementTable = opts.DisplacementTable
		o.SinkOptions = opts.SinkOptions
	}
}

// WithProcessName sets the target process's executable name.
func WithProcessName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.ProcessName = name
		}
	}
}

// WithPollInterval sets how often the tracker polls the target process.
func WithPollInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.PollInterval = interval
		}
	}
}

// WithReacquireThreshold sets how many consecutive poll errors the tracker
// tolerates before re-running discovery.
func WithReacquireThreshold(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.ReacquireThreshold = n
		}
	}
}

// WithResultDebounce sets the window within which a result identical to
// the last emitted one is suppressed.
func WithResultDebounce(d time.Duration) OptionFunc {
	return func(o *Options) {
		if d > 0 {
			o.ResultDebounce = d
		}
	}
}

// WithSignatureFallback enables or disables the byte-signature scanning
// fallback used for the SongList anchor when its anchored scan finds
// nothing.
func WithSignatureFallback(enabled bool) OptionFunc {
	return func(o *Options) {
		o.EnableSignatureFallback = enabled
	}
}

// WithDisplacementTable overrides the default relative-displacement
// constants discovery uses to locate anchors from one another.
func WithDisplacementTable(table layout.DisplacementTable) OptionFunc {
	return func(o *Options) {
		if len(table.Entries) > 0 {
			o.DisplacementTable = table
		}
	}
}

// WithSinkChannelCapacity sets the maximum number of buffered PlayRecords
// per sink; once it is reached, new records are dropped.
func WithSinkChannelCapacity(capacity int) OptionFunc {
	return func(o *Options) {
		if capacity > 0 {
			o.SinkOptions.ChannelCapacity = capacity
		}
	}
}

// WithSinkRetryBackoff sets the per-attempt delay schedule for delivering a
// record through a sink's OnPlay call.
func WithSinkRetryBackoff(schedule []time.Duration) OptionFunc {
	return func(o *Options) {
		if len(schedule) > 0 {
			o.SinkOptions.RetryBackoff = schedule
		}
	}
}
