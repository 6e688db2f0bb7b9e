package uds

import "context"

// WriteDataByIdentifierResponse echoes the written data identifier.
type WriteDataByIdentifierResponse struct {
	DataIdentifier uint16
}

// WriteDataByIdentifier writes a data record under a 2-byte identifier
// (service 0x2E).
func (c *Client) WriteDataByIdentifier(ctx context.Context, dataIdentifier uint16, dataRecord []byte) (*WriteDataByIdentifierResponse, error) {
	request := composeWriteDataByIdentifierRequest(dataIdentifier, dataRecord)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return nil, err
	}
	return parseWriteDataByIdentifierResponse(raw)
}

func composeWriteDataByIdentifierRequest(dataIdentifier uint16, dataRecord []byte) []byte {
	request := make([]byte, 0, 3+len(dataRecord))
	request = append(request, byte(ServiceWriteDataByIdentifier), byte(dataIdentifier>>8), byte(dataIdentifier))
	request = append(request, dataRecord...)
	return request
}

func parseWriteDataByIdentifierResponse(raw []byte) (*WriteDataByIdentifierResponse, error) {
	if len(raw) == 0 {
		return nil, ErrResponseEmpty
	}
	if raw[0] != ServiceWriteDataByIdentifier.ResponseSID() {
		return nil, &SidMismatchError{
			Expected:   ServiceWriteDataByIdentifier.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	if len(raw) < 3 {
		return nil, &InvalidLengthError{RawMessage: raw}
	}
	return &WriteDataByIdentifierResponse{
		DataIdentifier: uint16(raw[1])<<8 | uint16(raw[2]),
	}, nil
}
