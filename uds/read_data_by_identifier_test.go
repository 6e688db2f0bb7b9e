package uds

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestComposeReadDataByIdentifierRequest(t *testing.T) {
	got := composeReadDataByIdentifierRequest([]uint16{0xF189, 0x0102})
	want := []byte{0x22, 0xF1, 0x89, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("request mismatch: got % X want % X", got, want)
	}
}

func TestReadDataByIdentifierNoIdentifiers(t *testing.T) {
	client := NewClient(&fakeTransport{})
	if _, err := client.ReadDataByIdentifier(context.Background()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestReadDataByIdentifierSingleConsumesAll(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x62, 0xF1, 0x89, 0x10, 0x20, 0x30}},
	}
	client := NewClient(transport)

	result, err := client.ReadDataByIdentifier(context.Background(), 0xF189)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	parsed, ok := result.Parsed()
	if !ok {
		t.Fatal("single identifier read must return a parsed result")
	}
	if len(parsed.DataRecords) != 1 {
		t.Fatalf("expected 1 record, got %d", len(parsed.DataRecords))
	}
	record := parsed.DataRecords[0]
	if record.DataIdentifier != 0xF189 || !bytes.Equal(record.Data, []byte{0x10, 0x20, 0x30}) {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestReadDataByIdentifierMultipleReturnsRaw(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x62, 0x00, 0x0A, 0x01, 0x00, 0x14, 0x02, 0x03}},
	}
	client := NewClient(transport)

	result, err := client.ReadDataByIdentifier(context.Background(), 0x000A, 0x0014)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if result.IsParsed() {
		t.Fatal("multi identifier read without lengths must stay raw")
	}
	if !bytes.Equal(result.Raw(), []byte{0x00, 0x0A, 0x01, 0x00, 0x14, 0x02, 0x03}) {
		t.Fatalf("unexpected raw payload: % X", result.Raw())
	}
}

func TestReadDataByIdentifierWithLengths(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{
			0x62,
			0x00, 0x0A, 0x00,
			0x00, 0x14, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05,
		}},
	}
	client := NewClient(transport)

	result, err := client.ReadDataByIdentifierWithLengths(context.Background(), []DataIdentifierRequest{
		{ID: 0x000A, Length: 1},
		{ID: 0x0014, Length: 10},
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	parsed, ok := result.Parsed()
	if !ok {
		t.Fatal("expected a parsed result")
	}
	want := []DataRecord{
		{DataIdentifier: 0x000A, Data: []byte{0x00}},
		{DataIdentifier: 0x0014, Data: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05}},
	}
	if !reflect.DeepEqual(parsed.DataRecords, want) {
		t.Fatalf("records mismatch:\ngot  %+v\nwant %+v", parsed.DataRecords, want)
	}
	if !bytes.Equal(transport.sent[0], []byte{0x22, 0x00, 0x0A, 0x00, 0x14}) {
		t.Fatalf("unexpected request: % X", transport.sent[0])
	}
}

func TestReadDataByIdentifierWithLengthsDidMismatch(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x62, 0x00, 0x0A, 0x00, 0x00, 0x15, 0x01}},
	}
	client := NewClient(transport)

	_, err := client.ReadDataByIdentifierWithLengths(context.Background(), []DataIdentifierRequest{
		{ID: 0x000A, Length: 1},
		{ID: 0x0014, Length: 1},
	})
	var mismatch *DidMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DidMismatchError, got %v", err)
	}
	if mismatch.Expected != 0x0014 || mismatch.Received != 0x0015 {
		t.Fatalf("unexpected payload: %+v", mismatch)
	}
}

func TestReadDataByIdentifierWithLengthsShortResponse(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x62, 0x00, 0x0A, 0x01}},
	}
	client := NewClient(transport)

	_, err := client.ReadDataByIdentifierWithLengths(context.Background(), []DataIdentifierRequest{
		{ID: 0x000A, Length: 5},
	})
	var invalid *InvalidLengthError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidLengthError, got %v", err)
	}
}

func TestReadDataByIdentifierSidMismatch(t *testing.T) {
	transport := &fakeTransport{
		responses: [][]byte{{0x50, 0x03}},
	}
	client := NewClient(transport)

	_, err := client.ReadDataByIdentifier(context.Background(), 0xF189)
	var mismatch *SidMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SidMismatchError, got %v", err)
	}
	if mismatch.Expected != 0x62 || mismatch.Received != 0x50 {
		t.Fatalf("unexpected payload: %+v", mismatch)
	}
}
