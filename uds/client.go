// Package uds implements the client side of the ISO 14229-1 Unified
// Diagnostic Services application protocol on top of an already-segmented
// transport such as ISO-TP over CAN.
//
// The Client composes service-specific requests, drives one request/response
// exchange at a time through a Transport, applies the shared negative
// response handling (retry on BusyRepeatRequest, continuation on
// RequestCorrectlyReceived_ResponsePending) and parses positive responses
// into typed records.
package uds

import (
	"context"

	"github.com/rs/zerolog"
)

// Transport is the capability interface the protocol engine needs from an
// underlying segmented transport. Both operations carry one full reassembled
// UDS message; implementations guarantee at most one outstanding send and
// one outstanding receive per instance.
type Transport interface {
	Send(ctx context.Context, payload []byte) error
	Receive(ctx context.Context) ([]byte, error)
}

const (
	defaultMaxBusyRetries  = 3
	defaultMaxPendingWaits = 10
)

// Options bounds the retry and pending-response behavior of an exchange.
type Options struct {
	// MaxBusyRetries is how many times the identical request is resent after
	// NRC BusyRepeatRequest before the exchange fails.
	MaxBusyRetries int
	// MaxPendingWaits is how many additional responses are awaited on the
	// same request after NRC RequestCorrectlyReceived_ResponsePending.
	MaxPendingWaits int
}

// DefaultOptions returns the retry bounds used when none are provided.
func DefaultOptions() Options {
	return Options{
		MaxBusyRetries:  defaultMaxBusyRetries,
		MaxPendingWaits: defaultMaxPendingWaits,
	}
}

// Client provides one method per implemented UDS service. It owns the
// transport for the duration of each exchange; callers must not issue a
// second request on the same client before the first has resolved.
type Client struct {
	transport Transport
	opts      Options
	log       zerolog.Logger
}

// NewClient builds a client over the provided transport with default
// options and no logging.
func NewClient(t Transport) *Client {
	return NewClientWithOptions(t, DefaultOptions())
}

// NewClientWithOptions builds a client with custom retry bounds.
func NewClientWithOptions(t Transport, opts Options) *Client {
	if opts.MaxBusyRetries <= 0 {
		opts.MaxBusyRetries = defaultMaxBusyRetries
	}
	if opts.MaxPendingWaits <= 0 {
		opts.MaxPendingWaits = defaultMaxPendingWaits
	}
	return &Client{
		transport: t,
		opts:      opts,
		log:       zerolog.Nop(),
	}
}

// SetLogger routes engine diagnostics (retries, pending responses) to the
// given logger.
func (c *Client) SetLogger(log zerolog.Logger) {
	c.log = log
}
