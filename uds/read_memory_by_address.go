package uds

import (
	"context"
	"encoding/binary"
)

const maxAddressFieldWidth = 8

// ReadMemoryByAddressResponse carries the memory content as an opaque
// record; its interpretation depends on the addressed ECU.
type ReadMemoryByAddressResponse struct {
	DataRecord []byte
}

// ReadMemoryByAddress reads a block of server memory (service 0x23). The
// low nibble of formatIdentifier encodes the byte width of memoryAddress,
// the high nibble the byte width of memorySize; both slices are big-endian
// with the most significant byte first.
func (c *Client) ReadMemoryByAddress(ctx context.Context, formatIdentifier byte, memoryAddress, memorySize []byte) (*ReadMemoryByAddressResponse, error) {
	request := composeReadMemoryByAddressRequest(formatIdentifier, memoryAddress, memorySize)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return nil, err
	}
	return parseReadMemoryByAddressResponse(raw)
}

// ReadMemoryByAddressSimplified derives the format identifier from numeric
// address and size values. A zero addressWidth or sizeWidth means "use the
// minimal width that holds the value"; an explicit width too small for its
// value fails with ErrInvalidArgument, a larger one left-pads with zeros.
func (c *Client) ReadMemoryByAddressSimplified(ctx context.Context, memoryAddress, memorySize uint64, addressWidth, sizeWidth byte) (*ReadMemoryByAddressResponse, error) {
	formatIdentifier, addressBytes, sizeBytes, err := encodeAddressAndSize(memoryAddress, memorySize, addressWidth, sizeWidth)
	if err != nil {
		return nil, err
	}
	return c.ReadMemoryByAddress(ctx, formatIdentifier, addressBytes, sizeBytes)
}

// encodeAddressAndSize computes the address_and_memory_length_format_identifier
// plus the big-endian address and size fields. Widths above 8 are clamped to
// 8, the widest field the format nibble can express.
func encodeAddressAndSize(memoryAddress, memorySize uint64, addressWidth, sizeWidth byte) (byte, []byte, []byte, error) {
	addressBytes := minimalWidth(memoryAddress)
	sizeBytes := minimalWidth(memorySize)

	if addressWidth > 0 {
		if addressWidth > maxAddressFieldWidth {
			addressWidth = maxAddressFieldWidth
		}
		if addressWidth < addressBytes {
			return 0, nil, nil, ErrInvalidArgument
		}
		addressBytes = addressWidth
	}
	if sizeWidth > 0 {
		if sizeWidth > maxAddressFieldWidth {
			sizeWidth = maxAddressFieldWidth
		}
		if sizeWidth < sizeBytes {
			return 0, nil, nil, ErrInvalidArgument
		}
		sizeBytes = sizeWidth
	}

	formatIdentifier := sizeBytes<<4 | addressBytes
	return formatIdentifier, trailingBytes(memoryAddress, addressBytes), trailingBytes(memorySize, sizeBytes), nil
}

// minimalWidth returns the fewest bytes that can represent v; 0 for v == 0.
func minimalWidth(v uint64) byte {
	var n byte
	for ; v > 0; v >>= 8 {
		n++
	}
	return n
}

// trailingBytes keeps the low `width` bytes of the big-endian encoding of v.
func trailingBytes(v uint64, width byte) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[8-width:]
}

func composeReadMemoryByAddressRequest(formatIdentifier byte, memoryAddress, memorySize []byte) []byte {
	request := make([]byte, 0, 2+len(memoryAddress)+len(memorySize))
	request = append(request, byte(ServiceReadMemoryByAddress), formatIdentifier)
	request = append(request, memoryAddress...)
	request = append(request, memorySize...)
	return request
}

func parseReadMemoryByAddressResponse(raw []byte) (*ReadMemoryByAddressResponse, error) {
	if len(raw) == 0 {
		return nil, ErrResponseEmpty
	}
	if raw[0] != ServiceReadMemoryByAddress.ResponseSID() {
		return nil, &SidMismatchError{
			Expected:   ServiceReadMemoryByAddress.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	return &ReadMemoryByAddressResponse{DataRecord: append([]byte(nil), raw[1:]...)}, nil
}
