package uds

import (
	"context"
	"math"
)

// ReadAllRemaining marks a data identifier whose record consumes every byte
// left in the response. Valid only when exactly one identifier is requested,
// since the wire format does not delimit records.
const ReadAllRemaining uint32 = math.MaxUint32

// DataIdentifierRequest pairs a 2-byte data identifier with the expected
// length of its data record in the response.
type DataIdentifierRequest struct {
	ID     uint16
	Length uint32
}

// DataRecord is one returned (identifier, data) entry.
type DataRecord struct {
	DataIdentifier uint16
	Data           []byte
}

// ReadDataByIdentifierResponse holds the returned records in request order.
type ReadDataByIdentifierResponse struct {
	DataRecords []DataRecord
}

// ReadDataByIdentifier reads one or more 2-byte data identifiers (service
// 0x22). The record length of each identifier is not self-describing in the
// wire format, so the response can only be split with prior knowledge:
//
//   - a single identifier always yields a parsed single-record result
//     consuming the whole message;
//   - multiple identifiers cannot be safely split and are returned as a raw
//     payload (SID byte stripped). Use ReadDataByIdentifierWithLengths when
//     the record lengths are known.
func (c *Client) ReadDataByIdentifier(ctx context.Context, dataIdentifiers ...uint16) (DataFormat[ReadDataByIdentifierResponse], error) {
	var zero DataFormat[ReadDataByIdentifierResponse]
	if len(dataIdentifiers) == 0 {
		return zero, ErrInvalidArgument
	}
	if len(dataIdentifiers) == 1 {
		return c.ReadDataByIdentifierWithLengths(ctx, []DataIdentifierRequest{
			{ID: dataIdentifiers[0], Length: ReadAllRemaining},
		})
	}
	request := composeReadDataByIdentifierRequest(dataIdentifiers)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return zero, err
	}
	return parseReadDataByIdentifierResponse(raw)
}

// ReadDataByIdentifierWithLengths reads multiple identifiers whose record
// lengths are known, verifying each returned identifier positionally.
func (c *Client) ReadDataByIdentifierWithLengths(ctx context.Context, requests []DataIdentifierRequest) (DataFormat[ReadDataByIdentifierResponse], error) {
	var zero DataFormat[ReadDataByIdentifierResponse]
	if len(requests) == 0 {
		return zero, ErrInvalidArgument
	}
	dataIdentifiers := make([]uint16, len(requests))
	for i, r := range requests {
		dataIdentifiers[i] = r.ID
	}
	request := composeReadDataByIdentifierRequest(dataIdentifiers)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return zero, err
	}
	return parseReadDataByIdentifierLengthsResponse(requests, raw)
}

func composeReadDataByIdentifierRequest(dataIdentifiers []uint16) []byte {
	request := make([]byte, 0, 1+2*len(dataIdentifiers))
	request = append(request, byte(ServiceReadDataByIdentifier))
	for _, did := range dataIdentifiers {
		request = append(request, byte(did>>8), byte(did))
	}
	return request
}

// parseReadDataByIdentifierResponse validates the SID and returns the rest
// of the message undecoded; record boundaries are unknowable here.
func parseReadDataByIdentifierResponse(raw []byte) (DataFormat[ReadDataByIdentifierResponse], error) {
	var zero DataFormat[ReadDataByIdentifierResponse]
	if len(raw) == 0 {
		return zero, ErrResponseEmpty
	}
	if raw[0] != ServiceReadDataByIdentifier.ResponseSID() {
		return zero, &SidMismatchError{
			Expected:   ServiceReadDataByIdentifier.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	return RawFormat[ReadDataByIdentifierResponse](raw[1:]), nil
}

// parseReadDataByIdentifierLengthsResponse splits the response positionally
// using the supplied per-identifier lengths. A Length of ReadAllRemaining
// consumes the rest of the message and should only be used with a single
// identifier.
func parseReadDataByIdentifierLengthsResponse(requests []DataIdentifierRequest, raw []byte) (DataFormat[ReadDataByIdentifierResponse], error) {
	var zero DataFormat[ReadDataByIdentifierResponse]
	if len(raw) == 0 {
		return zero, ErrResponseEmpty
	}
	if raw[0] != ServiceReadDataByIdentifier.ResponseSID() {
		return zero, &SidMismatchError{
			Expected:   ServiceReadDataByIdentifier.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}

	rest := raw[1:]
	records := make([]DataRecord, 0, len(requests))
	for _, req := range requests {
		if len(rest) < 2 {
			return zero, &InvalidLengthError{RawMessage: raw}
		}
		responseDID := uint16(rest[0])<<8 | uint16(rest[1])
		rest = rest[2:]
		if responseDID != req.ID {
			return zero, &DidMismatchError{
				Expected:   req.ID,
				Received:   responseDID,
				RawMessage: raw,
			}
		}

		var data []byte
		if req.Length == ReadAllRemaining {
			data = append([]byte(nil), rest...)
			rest = nil
		} else {
			if uint32(len(rest)) < req.Length {
				return zero, &InvalidLengthError{RawMessage: raw}
			}
			data = append([]byte(nil), rest[:req.Length]...)
			rest = rest[req.Length:]
		}
		records = append(records, DataRecord{DataIdentifier: responseDID, Data: data})
	}

	return ParsedFormat(ReadDataByIdentifierResponse{DataRecords: records}), nil
}
