package uds

import (
	"context"

	"github.com/LoveWonYoung/udskit/nrc"
)

// parseForError inspects a raw response for the negative response frame
// [0x7F, rejected_sid, nrc]. It returns nil for any response that is not a
// negative response; the caller's codec validates the rest. Pure, no side
// effects.
func parseForError(raw []byte) error {
	if len(raw) == 0 {
		return ErrResponseEmpty
	}
	if raw[0] != NegativeResponseSID {
		return nil
	}
	if len(raw) < 3 {
		return ErrResponseEmpty
	}
	rejectedSID := raw[1]
	code, known := nrc.Lookup(raw[2])
	if !known {
		return &UnknownNRCError{RejectedSID: rejectedSID, UnknownNRC: raw[2]}
	}
	return &NRCError{NRC: NrcData{RejectedSID: rejectedSID, Code: code}}
}

// sendAndReceive performs one request/response exchange: send the request,
// receive until a non-pending response arrives, resend on BusyRepeatRequest
// up to the configured bound, and return the validated raw response bytes.
//
// The resent bytes are always identical to the original request. Transport
// failures are fatal to the exchange and wrapped in CommunicationError.
func (c *Client) sendAndReceive(ctx context.Context, request []byte) ([]byte, error) {
	if len(request) == 0 {
		return nil, ErrRequestEmpty
	}

	busyRetries := c.opts.MaxBusyRetries
	pendingWaits := c.opts.MaxPendingWaits

	if err := c.transport.Send(ctx, request); err != nil {
		return nil, &CommunicationError{Err: err}
	}
	raw, err := c.transport.Receive(ctx)
	if err != nil {
		return nil, &CommunicationError{Err: err}
	}

	for {
		parseErr := parseForError(raw)
		if parseErr == nil {
			return raw, nil
		}
		nrcErr, ok := parseErr.(*NRCError)
		if !ok {
			return nil, parseErr
		}

		if nrcErr.NRC.RejectedSID != request[0] {
			return nil, &SidMismatchError{
				Expected:   request[0],
				Received:   nrcErr.NRC.RejectedSID,
				RawMessage: raw,
			}
		}

		switch nrcErr.NRC.Code {
		case nrc.BusyRepeatRequest:
			if busyRetries <= 0 {
				c.log.Warn().Hex("request", request).Msg("service failed after multiple repeats")
				return nil, nrcErr
			}
			busyRetries--
			c.log.Info().Hex("request", request).Msg("received NRC BusyRepeatRequest, repeating")
			if err := c.transport.Send(ctx, request); err != nil {
				return nil, &CommunicationError{Err: err}
			}
			raw, err = c.transport.Receive(ctx)
			if err != nil {
				return nil, &CommunicationError{Err: err}
			}

		case nrc.RequestCorrectlyReceivedResponsePending:
			if pendingWaits <= 0 {
				c.log.Warn().Hex("request", request).Msg("response still pending after maximum waits")
				return nil, nrcErr
			}
			pendingWaits--
			c.log.Info().Hex("request", request).Msg("NRC ResponsePending received, waiting for next response")
			raw, err = c.transport.Receive(ctx)
			if err != nil {
				return nil, &CommunicationError{Err: err}
			}

		default:
			return nil, nrcErr
		}
	}
}
