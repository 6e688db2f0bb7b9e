// Package linclient provides a LIN transport for the uds protocol engine,
// addressing a single slave node (ECU) through a lintp master.
package linclient

import (
	"context"
	"errors"
	"time"

	"github.com/LoveWonYoung/lintp/tp"
)

const (
	defaultReceiveTimeout = 2 * time.Second
	defaultPollInterval   = 2 * time.Millisecond
)

// ErrReceiveTimeout is returned when the slave does not answer within the
// receive deadline.
var ErrReceiveTimeout = errors.New("linclient: timed out waiting for response")

// Config holds the addressing and timing of the transport.
type Config struct {
	// TargetNad is the node address of the diagnosed slave.
	TargetNad byte
	// ReceiveTimeout bounds one Receive call when the caller's context has
	// no earlier deadline.
	ReceiveTimeout time.Duration
	// PollInterval is the diagnostic receive polling period.
	PollInterval time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig(targetNad byte) Config {
	return Config{
		TargetNad:      targetNad,
		ReceiveTimeout: defaultReceiveTimeout,
		PollInterval:   defaultPollInterval,
	}
}

// Transport speaks the LIN diagnostic transport protocol through a
// configured driver. One outstanding request/response pair at a time.
type Transport struct {
	linMaster *tp.LinMaster
	cfg       Config
}

// New builds a transport over a LIN driver addressing targetNad.
func New(driver tp.Driver, targetNad byte) *Transport {
	return NewWithConfig(driver, DefaultConfig(targetNad))
}

// NewWithConfig builds a transport with custom timing.
func NewWithConfig(driver tp.Driver, cfg Config) *Transport {
	if cfg.ReceiveTimeout <= 0 {
		cfg.ReceiveTimeout = defaultReceiveTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Transport{
		linMaster: tp.NewMaster(driver),
		cfg:       cfg,
	}
}

// Send queues one UDS request for the target node. The first payload byte
// is the service id, the remainder the service arguments.
func (t *Transport) Send(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(payload) == 0 {
		return errors.New("linclient: payload cannot be empty")
	}

	// Drop stale diagnostic responses from an earlier exchange.
	for i := 0; i < 10; i++ {
		if t.linMaster.ReceiveDiagnostic() == nil {
			break
		}
	}

	t.linMaster.SendDiagnostic(t.cfg.TargetNad, payload[0], payload[1:])
	return nil
}

// Receive polls the master until one full diagnostic message arrives and
// returns it as [sid, data...].
func (t *Transport) Receive(ctx context.Context) ([]byte, error) {
	deadline := time.Now().Add(t.cfg.ReceiveTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return nil, ErrReceiveTimeout
			}
			msg := t.linMaster.ReceiveDiagnostic()
			if msg == nil {
				continue
			}
			response := make([]byte, 0, 1+len(msg.Data))
			response = append(response, msg.SID)
			response = append(response, msg.Data...)
			return response, nil
		}
	}
}

// Close releases the underlying LIN master.
func (t *Transport) Close() {
	t.linMaster.Close()
}
