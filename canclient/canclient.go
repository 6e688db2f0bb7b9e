// Package canclient provides the CAN/ISO-TP transport used by the uds
// protocol engine. It owns the ISO-TP stack and its processing goroutine
// and exposes the single-outstanding Send/Receive pair the engine expects.
package canclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LoveWonYoung/canio/drv"
	"github.com/LoveWonYoung/isotp/tp"
)

const (
	defaultSendTimeout    = 500 * time.Millisecond
	defaultReceiveTimeout = 1 * time.Second
	defaultRecvPoll       = 20 * time.Millisecond
)

var (
	// ErrFailedToFindCanDevice is wrapped when the CAN device or adapter
	// cannot be opened.
	ErrFailedToFindCanDevice = errors.New("canclient: failed to find CAN device")

	// ErrIO is wrapped around ISO-TP send failures.
	ErrIO = errors.New("canclient: socket I/O error")

	// ErrReceiveTimeout is returned when no reassembled message arrives
	// within the receive deadline.
	ErrReceiveTimeout = errors.New("canclient: timed out waiting for response")

	// ErrClosed is returned for operations on a closed transport.
	ErrClosed = errors.New("canclient: transport is closed")
)

// Config defines the timing and addressing of the transport.
type Config struct {
	// SendTimeout bounds one ISO-TP blocking send.
	SendTimeout time.Duration
	// ReceiveTimeout bounds one Receive call when the caller's context has
	// no earlier deadline.
	ReceiveTimeout time.Duration
	// RecvPoll is the stack polling interval while waiting for a message.
	RecvPoll time.Duration
	// Functional switches requests to functional addressing.
	Functional bool
}

// DefaultConfig returns the timing used when none is provided.
func DefaultConfig() Config {
	return Config{
		SendTimeout:    defaultSendTimeout,
		ReceiveTimeout: defaultReceiveTimeout,
		RecvPoll:       defaultRecvPoll,
	}
}

// Transport runs an ISO-TP stack over a CAN driver. It guarantees at most
// one outstanding send and one outstanding receive at a time.
type Transport struct {
	adapter *drv.ToomossAdapter
	tll     *tp.TransportLayerLogic
	cfg     Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// New builds an ISO-TP transport over the provided CAN driver.
func New(dev drv.CANDriver, addr *tp.Address, params tp.Params, cfg Config) (*Transport, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: CAN driver instance is nil", ErrFailedToFindCanDevice)
	}
	if addr == nil {
		return nil, errors.New("canclient: address cannot be nil")
	}
	if params.TxDataLength == 0 {
		params = tp.NewParams()
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if cfg.ReceiveTimeout <= 0 {
		cfg.ReceiveTimeout = defaultReceiveTimeout
	}
	if cfg.RecvPoll <= 0 {
		cfg.RecvPoll = defaultRecvPoll
	}

	adapter, err := drv.NewToomossAdapter(dev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToFindCanDevice, err)
	}

	t := &Transport{
		adapter: adapter,
		cfg:     cfg,
	}
	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.tll = tp.NewTransportLayerLogic(adapter.RxFunc, adapter.TxFunc, addr, nil, &params, nil)
	t.start()
	return t, nil
}

// start drives the ISO-TP state machine until the transport is closed.
func (t *Transport) start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-t.ctx.Done():
				return
			default:
			}

			sleep := t.tll.SleepTime()
			if sleep <= 0 {
				sleep = 0.001
			}
			t.tll.Process(sleep, true, true)
			time.Sleep(time.Duration(sleep * float64(time.Second)))
		}
	}()
}

// Send transmits one complete request payload. It suspends until the ISO-TP
// stack has accepted the full message or fails.
func (t *Transport) Send(ctx context.Context, payload []byte) error {
	if t.IsClosed() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	targetType := uint32(tp.Physical)
	if t.cfg.Functional {
		targetType = uint32(tp.Functional)
	}
	if err := t.tll.Send(payload, targetType, t.cfg.SendTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Receive suspends until one full reassembled message arrives, the caller's
// context is done, or the receive deadline expires.
func (t *Transport) Receive(ctx context.Context) ([]byte, error) {
	if t.IsClosed() {
		return nil, ErrClosed
	}

	deadline := time.Now().Add(t.cfg.ReceiveTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-t.ctx.Done():
			return nil, ErrClosed
		default:
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, ErrReceiveTimeout
		}
		wait := remaining
		if wait > t.cfg.RecvPoll {
			wait = t.cfg.RecvPoll
		}
		if resp, ok := t.tll.Recv(true, wait); ok {
			return resp, nil
		}
	}
}

// Close stops background processing and releases the driver.
func (t *Transport) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
	t.adapter.Close()
}

// IsClosed reports if the transport has been closed.
func (t *Transport) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
