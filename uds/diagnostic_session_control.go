package uds

import "context"

// Diagnostic session identifiers defined by ISO 14229-1; vehicle
// manufacturers may use additional values.
const (
	DefaultSession                byte = 0x01
	ProgrammingSession            byte = 0x02
	ExtendedDiagnosticSession     byte = 0x03
	SafetySystemDiagnosticSession byte = 0x04
)

// DiagnosticSessionControlResponse carries the entered session and the
// server timing parameters. P2 and P2Star are big-endian durations as sent
// on the wire (P2 in 1 ms units, P2Star in 10 ms units).
type DiagnosticSessionControlResponse struct {
	Session byte
	P2      uint16
	P2Star  uint16
}

// DiagnosticSessionControl switches the ECU diagnostic session (service 0x10).
func (c *Client) DiagnosticSessionControl(ctx context.Context, sessionID byte) (*DiagnosticSessionControlResponse, error) {
	request := composeDiagnosticSessionControlRequest(sessionID)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return nil, err
	}
	return parseDiagnosticSessionControlResponse(raw)
}

func composeDiagnosticSessionControlRequest(sessionID byte) []byte {
	return []byte{byte(ServiceDiagnosticSessionControl), sessionID}
}

func parseDiagnosticSessionControlResponse(raw []byte) (*DiagnosticSessionControlResponse, error) {
	if len(raw) == 0 {
		return nil, ErrResponseEmpty
	}
	if raw[0] != ServiceDiagnosticSessionControl.ResponseSID() {
		return nil, &SidMismatchError{
			Expected:   ServiceDiagnosticSessionControl.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	if len(raw) < 6 {
		return nil, &InvalidLengthError{RawMessage: raw}
	}
	return &DiagnosticSessionControlResponse{
		Session: raw[1],
		P2:      uint16(raw[2])<<8 | uint16(raw[3]),
		P2Star:  uint16(raw[4])<<8 | uint16(raw[5]),
	}, nil
}
