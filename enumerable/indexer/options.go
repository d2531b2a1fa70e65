package indexer

import (
	"errors"

	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable"
)

// ErrNilPropertyGetter is returned when WithPropertyGetter is given nil.
var ErrNilPropertyGetter = errors.New("property getter must not be nil")

type config struct {
	getter PropertyGetter
	logger enumerable.Logger
}

// Option defines a functional option for configuring an Indexer or an IndexedEnumerable.
type Option func(*config) error

// WithPropertyGetter replaces GetProperty as the way property values are read from elements.
func WithPropertyGetter(getter PropertyGetter) Option {
	return func(c *config) error {
		if getter == nil {
			return ErrNilPropertyGetter
		}

		c.getter = getter

		return nil
	}
}

// WithLogger sets the logger. Index builds and resets are logged at debug level.
func WithLogger(logger enumerable.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

func newConfig(options []Option) (config, error) {
	c := config{getter: GetProperty}

	for _, option := range options {
		if err := option(&c); err != nil {
			return config{}, err
		}
	}

	return c, nil
}

const (
	logMsgIndexBuilt = "property index built"
	logMsgIndexReset = "property indices reset"
	logMsgIndexPatch = "property indices patched: "

	logAttrProperty = "property"
	logAttrBuckets  = "buckets"
	logAttrStart    = "start"
	logAttrCount    = "count"
	logAttrOffset   = "offset"
)

// logDebug logs at debug level if the logger is configured.
func (c config) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
