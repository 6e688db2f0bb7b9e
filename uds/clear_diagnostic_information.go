package uds

import "context"

// ClearDiagnosticInformation clears the stored DTCs of a group (service
// 0x14). groupOfDTC is encoded as three big-endian bytes; the top byte of
// the argument is dropped. 0xFFFFFF addresses all groups.
func (c *Client) ClearDiagnosticInformation(ctx context.Context, groupOfDTC uint32) error {
	request := composeClearDiagnosticInformationRequest(groupOfDTC)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return err
	}
	return parseClearDiagnosticInformationResponse(raw)
}

func composeClearDiagnosticInformationRequest(groupOfDTC uint32) []byte {
	return []byte{
		byte(ServiceClearDiagnosticInformation),
		byte(groupOfDTC >> 16),
		byte(groupOfDTC >> 8),
		byte(groupOfDTC),
	}
}

// The positive response carries no payload beyond the echoed SID.
func parseClearDiagnosticInformationResponse(raw []byte) error {
	if len(raw) == 0 {
		return ErrResponseEmpty
	}
	if raw[0] != ServiceClearDiagnosticInformation.ResponseSID() {
		return &SidMismatchError{
			Expected:   ServiceClearDiagnosticInformation.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	return nil
}
