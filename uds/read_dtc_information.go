package uds

import "context"

// DTCSubFunction selects the ReadDTCInformation (0x19) report type.
type DTCSubFunction byte

const (
	ReportNumberOfDTCByStatusMask                 DTCSubFunction = 0x01
	ReportDTCByStatusMask                         DTCSubFunction = 0x02
	ReportDTCSnapshotIdentification               DTCSubFunction = 0x03
	ReportDTCSnapshotRecordByDTCNumber            DTCSubFunction = 0x04
	ReportDTCStoredDataByRecordNumber             DTCSubFunction = 0x05
	ReportDTCExtDataRecordByDTCNumber             DTCSubFunction = 0x06
	ReportNumberOfDTCBySeverityMaskRecord         DTCSubFunction = 0x07
	ReportDTCBySeverityMaskRecord                 DTCSubFunction = 0x08
	ReportSeverityInformationOfDTC                DTCSubFunction = 0x09
	ReportSupportedDTC                            DTCSubFunction = 0x0A
	ReportFirstTestFailedDTC                      DTCSubFunction = 0x0B
	ReportFirstConfirmedDTC                       DTCSubFunction = 0x0C
	ReportMostRecentTestFailedDTC                 DTCSubFunction = 0x0D
	ReportMostRecentConfirmedDTC                  DTCSubFunction = 0x0E
	ReportMirrorMemoryDTCByStatusMask             DTCSubFunction = 0x0F
	ReportMirrorMemoryDTCExtDataRecordByDTCNumber DTCSubFunction = 0x10
	ReportNumberOfMirrorMemoryDTCByStatusMask     DTCSubFunction = 0x11
	ReportNumberOfEmissionsOBDDTCByStatusMask     DTCSubFunction = 0x12
	ReportEmissionsOBDDTCByStatusMask             DTCSubFunction = 0x13
	ReportDTCFaultDetectionCounter                DTCSubFunction = 0x14
	ReportDTCWithPermanentStatus                  DTCSubFunction = 0x15
	ReportDTCExtDataRecordByRecordNumber          DTCSubFunction = 0x16
)

// DTCFormat identifies the DTC number encoding announced in count reports.
type DTCFormat byte

const (
	DTCFormatSAEJ2012DA00 DTCFormat = 0x00
	DTCFormatISO14229     DTCFormat = 0x01
	DTCFormatSAEJ1939     DTCFormat = 0x02
	DTCFormatISO11992     DTCFormat = 0x03
	DTCFormatSAEJ2012DA04 DTCFormat = 0x04
)

func (f DTCFormat) valid() bool {
	return f <= DTCFormatSAEJ2012DA04
}

// countReportSubfunctions are the report types answered with the
// [mask, format, count] shape.
var countReportSubfunctions = map[DTCSubFunction]bool{
	ReportNumberOfDTCByStatusMask:             true,
	ReportNumberOfDTCBySeverityMaskRecord:     true,
	ReportNumberOfMirrorMemoryDTCByStatusMask: true,
	ReportNumberOfEmissionsOBDDTCByStatusMask: true,
}

// listReportSubfunctions are the report types answered with the
// [mask, repeated 4-byte DTC records] shape.
var listReportSubfunctions = map[DTCSubFunction]bool{
	ReportDTCByStatusMask:             true,
	ReportSupportedDTC:                true,
	ReportFirstTestFailedDTC:          true,
	ReportFirstConfirmedDTC:           true,
	ReportMostRecentTestFailedDTC:     true,
	ReportMostRecentConfirmedDTC:      true,
	ReportMirrorMemoryDTCByStatusMask: true,
	ReportEmissionsOBDDTCByStatusMask: true,
	ReportDTCWithPermanentStatus:      true,
}

func knownDTCSubFunction(b byte) bool {
	s := DTCSubFunction(b)
	return (s >= ReportNumberOfDTCByStatusMask && s <= ReportDTCExtDataRecordByRecordNumber) ||
		s == 0x17 || s == 0x18 || s == 0x19 || s == 0x42 || s == 0x55
}

// DTCAndStatusRecord is one stored trouble code: a 3-byte DTC number (the
// top byte of the uint32 is always zero) and its status byte.
type DTCAndStatusRecord struct {
	DTC    uint32
	Status byte
}

// DTCCountReport is the count-shape response, shared by subfunctions 0x01,
// 0x07, 0x11 and 0x12.
type DTCCountReport struct {
	StatusAvailabilityMask byte
	FormatIdentifier       DTCFormat
	Count                  uint16
}

// DTCListReport is the list-shape response, shared by subfunctions 0x02,
// 0x0A-0x0F, 0x13 and 0x15.
type DTCListReport struct {
	StatusAvailabilityMask byte
	Records                []DTCAndStatusRecord
}

// ReadDTCInformationResponse is the tagged result of a ReadDTCInformation
// exchange: exactly one of Count or List is set, selected by the
// subfunction echoed by the ECU.
type ReadDTCInformationResponse struct {
	SubFunction DTCSubFunction
	Count       *DTCCountReport
	List        *DTCListReport
}

// ReportNumberOfDTCsByStatusMask reports how many DTCs match the status
// mask (subfunction 0x01).
func (c *Client) ReportNumberOfDTCsByStatusMask(ctx context.Context, statusMask byte) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcCountRequest(ctx, ReportNumberOfDTCByStatusMask, statusMask)
}

// ReportDTCsByStatusMask lists the DTCs matching the status mask
// (subfunction 0x02).
func (c *Client) ReportDTCsByStatusMask(ctx context.Context, statusMask byte) (DataFormat[ReadDTCInformationResponse], error) {
	request := composeDTCStatusMaskRequest(ReportDTCByStatusMask, statusMask)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return DataFormat[ReadDTCInformationResponse]{}, err
	}
	return parseDTCListReport(raw)
}

// ReportDTCSnapshot reads the snapshot records of one DTC (subfunction
// 0x04). dtcMaskRecord is a 3-byte value, the top byte of the argument is
// dropped. The snapshot payload structure depends on an external data
// dictionary, so the response is always returned raw.
func (c *Client) ReportDTCSnapshot(ctx context.Context, dtcMaskRecord uint32, snapshotRecordNumber byte) (DataFormat[ReadDTCInformationResponse], error) {
	request := composeDTCByNumberRequest(ReportDTCSnapshotRecordByDTCNumber, dtcMaskRecord, snapshotRecordNumber)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return DataFormat[ReadDTCInformationResponse]{}, err
	}
	return parseDTCRawReport(raw)
}

// ReportDTCExtendedData reads the extended data records of one DTC
// (subfunction 0x06). Returned raw for the same reason as snapshots.
func (c *Client) ReportDTCExtendedData(ctx context.Context, dtcMaskRecord uint32, extDataRecordNumber byte) (DataFormat[ReadDTCInformationResponse], error) {
	request := composeDTCByNumberRequest(ReportDTCExtDataRecordByDTCNumber, dtcMaskRecord, extDataRecordNumber)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return DataFormat[ReadDTCInformationResponse]{}, err
	}
	return parseDTCRawReport(raw)
}

// ReportSupportedDTCs lists every DTC the server supports (subfunction 0x0A).
func (c *Client) ReportSupportedDTCs(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportSupportedDTC)
}

// ReportFirstTestFailedDTCs lists the first test-failed DTC (subfunction 0x0B).
func (c *Client) ReportFirstTestFailedDTCs(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportFirstTestFailedDTC)
}

// ReportFirstConfirmedDTCs lists the first confirmed DTC (subfunction 0x0C).
func (c *Client) ReportFirstConfirmedDTCs(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportFirstConfirmedDTC)
}

// ReportMostRecentTestFailedDTCs lists the most recent test-failed DTC
// (subfunction 0x0D).
func (c *Client) ReportMostRecentTestFailedDTCs(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportMostRecentTestFailedDTC)
}

// ReportMostRecentConfirmedDTCs lists the most recent confirmed DTC
// (subfunction 0x0E).
func (c *Client) ReportMostRecentConfirmedDTCs(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportMostRecentConfirmedDTC)
}

// ReportDTCsWithPermanentStatus lists the DTCs with permanent status
// (subfunction 0x15).
func (c *Client) ReportDTCsWithPermanentStatus(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return c.dtcShortRequest(ctx, ReportDTCWithPermanentStatus)
}

// ReportDTCFaultDetectionCounters (subfunction 0x14) is not yet implemented.
func (c *Client) ReportDTCFaultDetectionCounters(ctx context.Context) (DataFormat[ReadDTCInformationResponse], error) {
	return DataFormat[ReadDTCInformationResponse]{}, ErrNotImplemented
}

func (c *Client) dtcCountRequest(ctx context.Context, subFunction DTCSubFunction, statusMask byte) (DataFormat[ReadDTCInformationResponse], error) {
	request := composeDTCStatusMaskRequest(subFunction, statusMask)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return DataFormat[ReadDTCInformationResponse]{}, err
	}
	return parseDTCCountReport(raw)
}

func (c *Client) dtcShortRequest(ctx context.Context, subFunction DTCSubFunction) (DataFormat[ReadDTCInformationResponse], error) {
	request := composeDTCShortRequest(subFunction)
	raw, err := c.sendAndReceive(ctx, request)
	if err != nil {
		return DataFormat[ReadDTCInformationResponse]{}, err
	}
	return parseDTCListReport(raw)
}

// Shared by subfunctions 0x01, 0x02, 0x0F, 0x11, 0x12, 0x13.
func composeDTCStatusMaskRequest(subFunction DTCSubFunction, statusMask byte) []byte {
	return []byte{byte(ServiceReadDTCInformation), byte(subFunction), statusMask}
}

// Shared by subfunctions 0x03, 0x04, 0x06, 0x10.
func composeDTCByNumberRequest(subFunction DTCSubFunction, dtcMaskRecord uint32, recordNumber byte) []byte {
	return []byte{
		byte(ServiceReadDTCInformation),
		byte(subFunction),
		byte(dtcMaskRecord >> 16),
		byte(dtcMaskRecord >> 8),
		byte(dtcMaskRecord),
		recordNumber,
	}
}

// Shared by subfunctions 0x0A-0x0E, 0x14, 0x15.
func composeDTCShortRequest(subFunction DTCSubFunction) []byte {
	return []byte{byte(ServiceReadDTCInformation), byte(subFunction)}
}

func checkDTCResponseHeader(raw []byte) error {
	if len(raw) == 0 {
		return ErrResponseEmpty
	}
	if raw[0] != ServiceReadDTCInformation.ResponseSID() {
		return &SidMismatchError{
			Expected:   ServiceReadDTCInformation.ResponseSID(),
			Received:   raw[0],
			RawMessage: raw,
		}
	}
	return nil
}

// parseDTCCountReport decodes the count shape shared by subfunctions 0x01,
// 0x07, 0x11 and 0x12.
func parseDTCCountReport(raw []byte) (DataFormat[ReadDTCInformationResponse], error) {
	var zero DataFormat[ReadDTCInformationResponse]
	if err := checkDTCResponseHeader(raw); err != nil {
		return zero, err
	}
	if len(raw) < 2 {
		return zero, &InvalidLengthError{RawMessage: raw}
	}
	if !knownDTCSubFunction(raw[1]) {
		return zero, &UnsupportedSubfunctionError{Subfunction: raw[1]}
	}
	subFunction := DTCSubFunction(raw[1])
	if !countReportSubfunctions[subFunction] {
		return zero, ErrInvalidArgument
	}
	if len(raw) < 6 {
		return zero, &InvalidLengthError{RawMessage: raw}
	}
	format := DTCFormat(raw[3])
	if !format.valid() {
		return zero, &ResponseIncorrectError{RawMessage: raw}
	}
	return ParsedFormat(ReadDTCInformationResponse{
		SubFunction: subFunction,
		Count: &DTCCountReport{
			StatusAvailabilityMask: raw[2],
			FormatIdentifier:       format,
			Count:                  uint16(raw[4])<<8 | uint16(raw[5]),
		},
	}), nil
}

// parseDTCListReport decodes the list shape: after the availability mask the
// message is a run of 4-byte records (3-byte DTC + status) until it ends.
func parseDTCListReport(raw []byte) (DataFormat[ReadDTCInformationResponse], error) {
	var zero DataFormat[ReadDTCInformationResponse]
	if err := checkDTCResponseHeader(raw); err != nil {
		return zero, err
	}
	if len(raw) < 3 {
		return zero, &InvalidLengthError{RawMessage: raw}
	}
	if !knownDTCSubFunction(raw[1]) {
		return zero, &UnsupportedSubfunctionError{Subfunction: raw[1]}
	}
	subFunction := DTCSubFunction(raw[1])
	if !listReportSubfunctions[subFunction] {
		return zero, ErrInvalidArgument
	}

	rest := raw[3:]
	if len(rest)%4 != 0 {
		return zero, &InvalidLengthError{RawMessage: raw}
	}
	records := make([]DTCAndStatusRecord, 0, len(rest)/4)
	for ; len(rest) >= 4; rest = rest[4:] {
		records = append(records, DTCAndStatusRecord{
			DTC:    uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2]),
			Status: rest[3],
		})
	}

	return ParsedFormat(ReadDTCInformationResponse{
		SubFunction: subFunction,
		List: &DTCListReport{
			StatusAvailabilityMask: raw[2],
			Records:                records,
		},
	}), nil
}

// parseDTCRawReport validates the SID only; snapshot and extended data
// payloads need an external data dictionary to split.
func parseDTCRawReport(raw []byte) (DataFormat[ReadDTCInformationResponse], error) {
	var zero DataFormat[ReadDTCInformationResponse]
	if err := checkDTCResponseHeader(raw); err != nil {
		return zero, err
	}
	return RawFormat[ReadDTCInformationResponse](raw[1:]), nil
}
