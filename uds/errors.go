package uds

import (
	"errors"
	"fmt"

	"github.com/LoveWonYoung/udskit/nrc"
)

var (
	// ErrResponseEmpty is returned when a received message has length 0 or
	// ends before the negative response frame is complete.
	ErrResponseEmpty = errors.New("uds: received message has length of 0")

	// ErrRequestEmpty is returned when a caller attempts to send a
	// zero-length request.
	ErrRequestEmpty = errors.New("uds: request to be sent is empty")

	// ErrInvalidArgument is returned when a combination of caller-supplied
	// arguments cannot be encoded or decoded.
	ErrInvalidArgument = errors.New("uds: argument or combination of arguments is not valid")

	// ErrNotImplemented is returned by service stubs.
	ErrNotImplemented = errors.New("uds: service is not yet implemented")
)

// NrcData pairs the service id an ECU says it rejected with the decoded
// negative response code.
type NrcData struct {
	RejectedSID byte
	Code        nrc.Code
}

// SidMismatchError reports a response whose leading service id does not
// match the expected positive response SID.
type SidMismatchError struct {
	Expected   byte
	Received   byte
	RawMessage []byte
}

func (e *SidMismatchError) Error() string {
	return fmt.Sprintf("uds: response SID mismatch: expected 0x%02X, received 0x%02X", e.Expected, e.Received)
}

// DidMismatchError reports a parsed data identifier that does not match the
// requested one at the position it was expected.
type DidMismatchError struct {
	Expected   uint16
	Received   uint16
	RawMessage []byte
}

func (e *DidMismatchError) Error() string {
	return fmt.Sprintf("uds: data identifier mismatch: expected 0x%04X, received 0x%04X", e.Expected, e.Received)
}

// InvalidLengthError reports a response that terminated before all mandatory
// fields were consumed.
type InvalidLengthError struct {
	RawMessage []byte
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("uds: response does not have the expected length: % X", e.RawMessage)
}

// NRCError is a terminal negative response from the ECU.
type NRCError struct {
	NRC NrcData
}

func (e *NRCError) Error() string {
	return fmt.Sprintf("uds: negative response to 0x%02X: 0x%02X (%s)",
		e.NRC.RejectedSID, byte(e.NRC.Code), e.NRC.Code)
}

// ShouldRetry reports whether resending the same request may succeed.
func (e *NRCError) ShouldRetry() bool {
	switch e.NRC.Code {
	case nrc.BusyRepeatRequest, nrc.RequestCorrectlyReceivedResponsePending:
		return true
	default:
		return false
	}
}

// UnknownNRCError reports a negative response whose NRC byte is not a
// recognized code.
type UnknownNRCError struct {
	RejectedSID byte
	UnknownNRC  byte
}

func (e *UnknownNRCError) Error() string {
	return fmt.Sprintf("uds: negative response to 0x%02X carries unknown NRC 0x%02X", e.RejectedSID, e.UnknownNRC)
}

// UnsupportedSubfunctionError reports a subfunction byte that does not map
// to a known report type for the addressed service.
type UnsupportedSubfunctionError struct {
	Subfunction byte
}

func (e *UnsupportedSubfunctionError) Error() string {
	return fmt.Sprintf("uds: subfunction 0x%02X is not supported for the used service", e.Subfunction)
}

// ResponseIncorrectError reports a response that is well-formed in length
// but semantically inconsistent with the request.
type ResponseIncorrectError struct {
	RawMessage []byte
}

func (e *ResponseIncorrectError) Error() string {
	return fmt.Sprintf("uds: received data is not correct: % X", e.RawMessage)
}

// CommunicationError wraps a transport-layer failure. It is always fatal to
// the current exchange.
type CommunicationError struct {
	Err error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("uds: communication error: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}
