// Package nrc defines the ISO 14229-1 negative response codes as a
// process-wide read-only lookup table shared by all clients.
package nrc

// Code is a one-byte UDS negative response code.
type Code byte

const (
	PositiveResponse                          Code = 0x00
	GeneralReject                             Code = 0x10
	ServiceNotSupported                       Code = 0x11
	SubFunctionNotSupported                   Code = 0x12
	IncorrectMessageLengthOrInvalidFormat     Code = 0x13
	ResponseTooLong                           Code = 0x14
	BusyRepeatRequest                         Code = 0x21
	ConditionsNotCorrect                      Code = 0x22
	RequestSequenceError                      Code = 0x24
	NoResponseFromSubnetComponent             Code = 0x25
	FailurePreventsExecutionOfRequestedAction Code = 0x26
	RequestOutOfRange                         Code = 0x31
	SecurityAccessDenied                      Code = 0x33
	AuthenticationRequired                    Code = 0x34
	InvalidKey                                Code = 0x35
	ExceedNumberOfAttempts                    Code = 0x36
	RequiredTimeDelayNotExpired               Code = 0x37
	SecureDataTransmissionRequired            Code = 0x38 // Note: also used as an offset
	SecureDataTransmissionNotAllowed          Code = 0x39
	SecureDataVerificationFailed              Code = 0x3A
	UploadDownloadNotAccepted                 Code = 0x70
	TransferDataSuspended                     Code = 0x71
	GeneralProgrammingFailure                 Code = 0x72
	WrongBlockSequenceCounter                 Code = 0x73
	RequestCorrectlyReceivedResponsePending   Code = 0x78
	SubFunctionNotSupportedInActiveSession    Code = 0x7E
	ServiceNotSupportedInActiveSession        Code = 0x7F
	RpmTooHigh                                Code = 0x81
	RpmTooLow                                 Code = 0x82
	EngineIsRunning                           Code = 0x83
	EngineIsNotRunning                        Code = 0x84
	EngineRunTimeTooLow                       Code = 0x85
	TemperatureTooHigh                        Code = 0x86
	TemperatureTooLow                         Code = 0x87
	VehicleSpeedTooHigh                       Code = 0x88
	VehicleSpeedTooLow                        Code = 0x89
	ThrottlePedalTooHigh                      Code = 0x8A
	ThrottlePedalTooLow                       Code = 0x8B
	TransmissionRangeNotInNeutral             Code = 0x8C
	TransmissionRangeNotInGear                Code = 0x8D
	BrakeSwitchNotClosed                      Code = 0x8F
	ShifterLeverNotInPark                     Code = 0x90
	TorqueConverterClutchLocked               Code = 0x91
	VoltageTooHigh                            Code = 0x92
	VoltageTooLow                             Code = 0x93
	ResourceTemporarilyNotAvailable           Code = 0x94
)

var names = map[Code]string{
	PositiveResponse:                          "PositiveResponse",
	GeneralReject:                             "GeneralReject",
	ServiceNotSupported:                       "ServiceNotSupported",
	SubFunctionNotSupported:                   "SubFunctionNotSupported",
	IncorrectMessageLengthOrInvalidFormat:     "IncorrectMessageLengthOrInvalidFormat",
	ResponseTooLong:                           "ResponseTooLong",
	BusyRepeatRequest:                         "BusyRepeatRequest",
	ConditionsNotCorrect:                      "ConditionsNotCorrect",
	RequestSequenceError:                      "RequestSequenceError",
	NoResponseFromSubnetComponent:             "NoResponseFromSubnetComponent",
	FailurePreventsExecutionOfRequestedAction: "FailurePreventsExecutionOfRequestedAction",
	RequestOutOfRange:                         "RequestOutOfRange",
	SecurityAccessDenied:                      "SecurityAccessDenied",
	AuthenticationRequired:                    "AuthenticationRequired",
	InvalidKey:                                "InvalidKey",
	ExceedNumberOfAttempts:                    "ExceedNumberOfAttempts",
	RequiredTimeDelayNotExpired:               "RequiredTimeDelayNotExpired",
	SecureDataTransmissionRequired:            "SecureDataTransmissionRequired",
	SecureDataTransmissionNotAllowed:          "SecureDataTransmissionNotAllowed",
	SecureDataVerificationFailed:              "SecureDataVerificationFailed",
	UploadDownloadNotAccepted:                 "UploadDownloadNotAccepted",
	TransferDataSuspended:                     "TransferDataSuspended",
	GeneralProgrammingFailure:                 "GeneralProgrammingFailure",
	WrongBlockSequenceCounter:                 "WrongBlockSequenceCounter",
	RequestCorrectlyReceivedResponsePending:   "RequestCorrectlyReceived_ResponsePending",
	SubFunctionNotSupportedInActiveSession:    "SubFunctionNotSupportedInActiveSession",
	ServiceNotSupportedInActiveSession:        "ServiceNotSupportedInActiveSession",
	RpmTooHigh:                                "RpmTooHigh",
	RpmTooLow:                                 "RpmTooLow",
	EngineIsRunning:                           "EngineIsRunning",
	EngineIsNotRunning:                        "EngineIsNotRunning",
	EngineRunTimeTooLow:                       "EngineRunTimeTooLow",
	TemperatureTooHigh:                        "TemperatureTooHigh",
	TemperatureTooLow:                         "TemperatureTooLow",
	VehicleSpeedTooHigh:                       "VehicleSpeedTooHigh",
	VehicleSpeedTooLow:                        "VehicleSpeedTooLow",
	ThrottlePedalTooHigh:                      "ThrottlePedalTooHigh",
	ThrottlePedalTooLow:                       "ThrottlePedalTooLow",
	TransmissionRangeNotInNeutral:             "TransmissionRangeNotInNeutral",
	TransmissionRangeNotInGear:                "TransmissionRangeNotInGear",
	BrakeSwitchNotClosed:                      "BrakeSwitchNotClosed",
	ShifterLeverNotInPark:                     "ShifterLeverNotInPark",
	TorqueConverterClutchLocked:               "TorqueConverterClutchLocked",
	VoltageTooHigh:                            "VoltageTooHigh",
	VoltageTooLow:                             "VoltageTooLow",
	ResourceTemporarilyNotAvailable:           "ResourceTemporarilyNotAvailable",

	// ISO-15764 definitions with 0x38 offset
	0x38 + 3: "TerminationWithSignatureRequested",
	0x38 + 4: "AccessDenied",
	0x38 + 5: "VersionNotSupported",
	0x38 + 6: "SecuredLinkNotSupported",
	0x38 + 7: "CertificateNotAvailable",
	0x38 + 8: "AuditTrailInformationNotAvailable",
}

// Lookup returns the typed code for a raw NRC byte and reports whether the
// byte maps to a known code.
func Lookup(b byte) (Code, bool) {
	_, ok := names[Code(b)]
	return Code(b), ok
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "Unknown NRC"
}

// GetNrcString takes a numeric NRC code and returns its string representation.
// If the code is not found, it returns "Unknown NRC".
func GetNrcString(nrc byte) string {
	return Code(nrc).String()
}
