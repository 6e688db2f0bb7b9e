package uds

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/LoveWonYoung/udskit/nrc"
)

// fakeTransport replays canned responses and records every sent request.
type fakeTransport struct {
	sent      [][]byte
	responses [][]byte
	sendErr   error
	recvErr   error
}

func (f *fakeTransport) Send(ctx context.Context, payload []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return nil
}

func (f *fakeTransport) Receive(ctx context.Context) ([]byte, error) {
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no response queued")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func negativeResponse(rejectedSID byte, code nrc.Code) []byte {
	return []byte{NegativeResponseSID, rejectedSID, byte(code)}
}

func TestParseForErrorPositiveResponse(t *testing.T) {
	if err := parseForError([]byte{0x62, 0xF1, 0x90}); err != nil {
		t.Fatalf("unexpected error for positive response: %v", err)
	}
}

func TestParseForErrorEmptyResponse(t *testing.T) {
	if err := parseForError(nil); !errors.Is(err, ErrResponseEmpty) {
		t.Fatalf("expected ErrResponseEmpty, got %v", err)
	}
	if err := parseForError([]byte{NegativeResponseSID, 0x11}); !errors.Is(err, ErrResponseEmpty) {
		t.Fatalf("expected ErrResponseEmpty for truncated negative response, got %v", err)
	}
}

func TestParseForErrorUnknownNRC(t *testing.T) {
	err := parseForError([]byte{NegativeResponseSID, 0x11, 0xFF})
	var unknown *UnknownNRCError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownNRCError, got %v", err)
	}
	if unknown.RejectedSID != 0x11 || unknown.UnknownNRC != 0xFF {
		t.Fatalf("unexpected payload: %+v", unknown)
	}
}

func TestParseForErrorNRC(t *testing.T) {
	err := parseForError(negativeResponse(0x22, nrc.ConditionsNotCorrect))
	var nrcErr *NRCError
	if !errors.As(err, &nrcErr) {
		t.Fatalf("expected NRCError, got %v", err)
	}
	if nrcErr.NRC.RejectedSID != 0x22 || nrcErr.NRC.Code != nrc.ConditionsNotCorrect {
		t.Fatalf("unexpected payload: %+v", nrcErr.NRC)
	}
}

func TestSendAndReceiveEmptyRequest(t *testing.T) {
	client := NewClient(&fakeTransport{})
	if _, err := client.sendAndReceive(context.Background(), nil); !errors.Is(err, ErrRequestEmpty) {
		t.Fatalf("expected ErrRequestEmpty, got %v", err)
	}
}

func TestSendAndReceiveBusyRetriesAreByteIdentical(t *testing.T) {
	request := []byte{0x22, 0xF1, 0x90}
	transport := &fakeTransport{
		responses: [][]byte{
			negativeResponse(0x22, nrc.BusyRepeatRequest),
			negativeResponse(0x22, nrc.BusyRepeatRequest),
			{0x62, 0xF1, 0x90, 0x01},
		},
	}
	client := NewClient(transport)

	resp, err := client.sendAndReceive(context.Background(), request)
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !bytes.Equal(resp, []byte{0x62, 0xF1, 0x90, 0x01}) {
		t.Fatalf("unexpected response: % X", resp)
	}
	if len(transport.sent) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(transport.sent))
	}
	for i, sent := range transport.sent {
		if !bytes.Equal(sent, request) {
			t.Fatalf("resend %d is not byte-identical: % X", i, sent)
		}
	}
}

func TestSendAndReceiveBusyRetriesExhausted(t *testing.T) {
	transport := &fakeTransport{}
	for i := 0; i < 10; i++ {
		transport.responses = append(transport.responses, negativeResponse(0x11, nrc.BusyRepeatRequest))
	}
	client := NewClientWithOptions(transport, Options{MaxBusyRetries: 2, MaxPendingWaits: 1})

	_, err := client.sendAndReceive(context.Background(), []byte{0x11, 0x01})
	var nrcErr *NRCError
	if !errors.As(err, &nrcErr) {
		t.Fatalf("expected NRCError after exhaustion, got %v", err)
	}
	if nrcErr.NRC.Code != nrc.BusyRepeatRequest {
		t.Fatalf("unexpected code: %v", nrcErr.NRC.Code)
	}
	// Initial send plus the configured retries.
	if len(transport.sent) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(transport.sent))
	}
}

func TestSendAndReceivePendingContinuesWithoutResend(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{
			negativeResponse(0x22, nrc.RequestCorrectlyReceivedResponsePending),
			negativeResponse(0x22, nrc.RequestCorrectlyReceivedResponsePending),
			{0x62, 0xF1, 0x90, 0x01},
		},
	}
	client := NewClient(transport)

	resp, err := client.sendAndReceive(context.Background(), []byte{0x22, 0xF1, 0x90})
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !bytes.Equal(resp, []byte{0x62, 0xF1, 0x90, 0x01}) {
		t.Fatalf("unexpected response: % X", resp)
	}
	if len(transport.sent) != 1 {
		t.Fatalf("pending must not resend, got %d sends", len(transport.sent))
	}
}

func TestSendAndReceivePendingBound(t *testing.T) {
	transport := &fakeTransport{}
	for i := 0; i < 10; i++ {
		transport.responses = append(transport.responses,
			negativeResponse(0x22, nrc.RequestCorrectlyReceivedResponsePending))
	}
	client := NewClientWithOptions(transport, Options{MaxBusyRetries: 1, MaxPendingWaits: 2})

	_, err := client.sendAndReceive(context.Background(), []byte{0x22, 0xF1, 0x90})
	var nrcErr *NRCError
	if !errors.As(err, &nrcErr) {
		t.Fatalf("expected NRCError after pending bound, got %v", err)
	}
	if nrcErr.NRC.Code != nrc.RequestCorrectlyReceivedResponsePending {
		t.Fatalf("unexpected code: %v", nrcErr.NRC.Code)
	}
}

func TestSendAndReceiveRejectedSidMismatch(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{negativeResponse(0x10, nrc.ConditionsNotCorrect)},
	}
	client := NewClient(transport)

	_, err := client.sendAndReceive(context.Background(), []byte{0x22, 0xF1, 0x90})
	var mismatch *SidMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SidMismatchError, got %v", err)
	}
	if mismatch.Expected != 0x22 || mismatch.Received != 0x10 {
		t.Fatalf("unexpected payload: %+v", mismatch)
	}
}

func TestSendAndReceiveTerminalNRC(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{negativeResponse(0x22, nrc.SecurityAccessDenied)},
	}
	client := NewClient(transport)

	_, err := client.sendAndReceive(context.Background(), []byte{0x22, 0xF1, 0x90})
	var nrcErr *NRCError
	if !errors.As(err, &nrcErr) {
		t.Fatalf("expected NRCError, got %v", err)
	}
	if nrcErr.ShouldRetry() {
		t.Fatal("SecurityAccessDenied must not be retryable")
	}
	if len(transport.sent) != 1 {
		t.Fatalf("terminal NRC must not retry, got %d sends", len(transport.sent))
	}
}

func TestSendAndReceiveTransportFailure(t *testing.T) {
	cause := errors.New("wire down")
	client := NewClient(&fakeTransport{sendErr: cause})

	_, err := client.sendAndReceive(context.Background(), []byte{0x11, 0x01})
	var comm *CommunicationError
	if !errors.As(err, &comm) {
		t.Fatalf("expected CommunicationError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("CommunicationError must unwrap to the transport error")
	}
}
