package observable

import (
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/indexer"
	"github.com/AntonStoeckl/lazy-enumerable-go/enumerable/session"
)

type config struct {
	indexerOptions []indexer.Option
	sessionOptions []session.Option
}

// Option defines a functional option for configuring a List.
type Option func(*config) error

// WithIndexerOptions configures the property index of the List.
func WithIndexerOptions(options ...indexer.Option) Option {
	return func(c *config) error {
		c.indexerOptions = append(c.indexerOptions, options...)
		return nil
	}
}

// WithSessionOptions configures the event raiser of the List.
func WithSessionOptions(options ...session.Option) Option {
	return func(c *config) error {
		c.sessionOptions = append(c.sessionOptions, options...)
		return nil
	}
}
