package uds

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestDiagnosticSessionControl(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x50, 0x03, 0x00, 0x32, 0x01, 0xF4}},
	}
	client := NewClient(transport)

	resp, err := client.DiagnosticSessionControl(context.Background(), ExtendedDiagnosticSession)
	if err != nil {
		t.Fatalf("session control failed: %v", err)
	}
	if resp.Session != ExtendedDiagnosticSession {
		t.Fatalf("unexpected session: %#02x", resp.Session)
	}
	if resp.P2 != 0x0032 || resp.P2Star != 0x01F4 {
		t.Fatalf("unexpected timings: P2=%#04x P2Star=%#04x", resp.P2, resp.P2Star)
	}
	if !bytes.Equal(transport.sent[0], []byte{0x10, 0x03}) {
		t.Fatalf("unexpected request: % X", transport.sent[0])
	}
}

func TestDiagnosticSessionControlShortResponse(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x50, 0x03, 0x00}},
	}
	client := NewClient(transport)

	_, err := client.DiagnosticSessionControl(context.Background(), ExtendedDiagnosticSession)
	var invalid *InvalidLengthError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidLengthError, got %v", err)
	}
}
