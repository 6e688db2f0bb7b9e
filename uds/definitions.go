package uds

// SendReceiveSIDOffset is added to a request SID to form the positive
// response SID.
const SendReceiveSIDOffset byte = 0x40

// NegativeResponseSID is the reserved service id an ECU uses to reject a
// request.
const NegativeResponseSID byte = 0x7F

// ServiceIdentifier is the one-byte opcode of a UDS request.
type ServiceIdentifier byte

const (
	ServiceDiagnosticSessionControl     ServiceIdentifier = 0x10
	ServiceEcuReset                     ServiceIdentifier = 0x11
	ServiceClearDiagnosticInformation   ServiceIdentifier = 0x14
	ServiceReadDTCInformation           ServiceIdentifier = 0x19
	ServiceReadDataByIdentifier         ServiceIdentifier = 0x22
	ServiceReadMemoryByAddress          ServiceIdentifier = 0x23
	ServiceReadScalingDataByIdentifier  ServiceIdentifier = 0x24
	ServiceSecurityAccess               ServiceIdentifier = 0x27
	ServiceCommunicationControl         ServiceIdentifier = 0x28
	ServiceAuthentication               ServiceIdentifier = 0x29
	ServiceReadDataByPeriodicIdentifier ServiceIdentifier = 0x2A
	ServiceDynamicallyDefineDataID      ServiceIdentifier = 0x2C
	ServiceWriteDataByIdentifier        ServiceIdentifier = 0x2E
	ServiceIOControlByIdentifier        ServiceIdentifier = 0x2F
	ServiceRoutineControl               ServiceIdentifier = 0x31
	ServiceRequestDownload              ServiceIdentifier = 0x34
	ServiceRequestUpload                ServiceIdentifier = 0x35
	ServiceTransferData                 ServiceIdentifier = 0x36
	ServiceRequestTransferExit          ServiceIdentifier = 0x37
	ServiceRequestFileTransfer          ServiceIdentifier = 0x38
	ServiceWriteMemoryByAddress         ServiceIdentifier = 0x3D
	ServiceTesterPresent                ServiceIdentifier = 0x3E
	ServiceAccessTimingParameters       ServiceIdentifier = 0x83
	ServiceSecuredDataTransmission      ServiceIdentifier = 0x84
	ServiceControlDTCSettings           ServiceIdentifier = 0x85
	ServiceResponseOnEvent              ServiceIdentifier = 0x86
	ServiceLinkControl                  ServiceIdentifier = 0x87
	ServiceNegativeResponse             ServiceIdentifier = 0x7F
)

// ResponseSID returns the SID an ECU echoes in a positive response.
func (s ServiceIdentifier) ResponseSID() byte {
	return byte(s) + SendReceiveSIDOffset
}
