package uds

import "context"

// ResetType selects the EcuReset (0x11) subfunction.
type ResetType byte

const (
	HardReset                 ResetType = 0x01
	KeyOffOnReset             ResetType = 0x02
	SoftReset                 ResetType = 0x03
	EnableRapidPowerShutDown  ResetType = 0x04
	DisableRapidPowerShutDown ResetType = 0x05
)

func (r ResetType) valid() bool {
	return r >= HardReset && r <= DisableRapidPowerShutDown
}

// EcuResetResponse echoes the reset type; PowerDownTime is present only for
// EnableRapidPowerShutDown.
type EcuResetResponse struct {
	ResetType     ResetType
	PowerDownTime *byte
}

// EcuReset requests an ECU reset (service 0x11).
func (c *Client) EcuReset(ctx context.Context, resetType ResetType) (*EcuResetResponse, error) {
	request := composeEcuResetRequest(resetType)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return nil, err
	}
	return parseEcuResetResponse(raw)
}

func composeEcuResetRequest(resetType ResetType) []byte {
	return []byte{byte(ServiceEcuReset), byte(resetType)}
}

func parseEcuResetResponse(raw []byte) (*EcuResetResponse, error) {
	if len(raw) == 0 {
		return nil, ErrResponseEmpty
	}
	if raw[0] != ServiceEcuReset.ResponseSID() {
		return nil, &SidMismatchError{
			Expected:   ServiceEcuReset.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	if len(raw) < 2 {
		return nil, &InvalidLengthError{RawMessage: raw}
	}
	resetType := ResetType(raw[1])
	if !resetType.valid() {
		return nil, &ResponseIncorrectError{RawMessage: raw}
	}
	resp := &EcuResetResponse{ResetType: resetType}
	if resetType == EnableRapidPowerShutDown {
		if len(raw) < 3 {
			return nil, &InvalidLengthError{RawMessage: raw}
		}
		t := raw[2]
		resp.PowerDownTime = &t
	}
	return resp, nil
}
