package options

import (
	"time"

	"github.com/yasora/reflux/internal/layout"
)

const (
	// Defines the default interval between polls of the target process.
	DefaultPollInterval = 100 * time.Millisecond

	// Defines the default number of consecutive poll errors tolerated
	// before the tracker discards its resolved offsets and re-runs
	// discovery.
	DefaultReacquireThreshold = 10

	// Defines the default window within which a result identical to the
	// last emitted one is suppressed.
	DefaultResultDebounce = 1 * time.Second

	// Defines the default maximum number of buffered PlayRecords per sink.
	DefaultSinkChannelCapacity = 16
)

// DefaultSinkRetryBackoff is the default retry/backoff schedule applied
// to a sink's OnPlay deliveries: three attempts, each preceded by its delay,
// doubling each time.
var DefaultSinkRetryBackoff = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

// Holds the default configuration settings for a tracker instance.
var defaultOptions = Options{
	ProcessName:             "",
	PollInterval:            DefaultPollInterval,
	ReacquireThreshold:      DefaultReacquireThreshold,
	ResultDebounce:          DefaultResultDebounce,
	EnableSignatureFallback: false,
	DisplacementTable:       layout.DefaultDisplacements(),
	SinkOptions: &sinkOptions{
		ChannelCapacity: DefaultSinkChannelCapacity,
		RetryBackoff:    DefaultSinkRetryBackoff,
	},
}

// NewDefaultOptions returns a copy of the tracker's default configuration.
func NewDefaultOptions() Options {
	opts := defaultOptions
	sinkCopy := *defaultOptions.SinkOptions
	opts.SinkOptions = &sinkCopy
	return opts
}
