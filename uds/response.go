package uds

// DataFormat holds a service response that is either fully parsed into its
// typed record or kept as the raw payload (leading SID byte stripped) when
// the wire format is structurally ambiguous without prior knowledge, e.g.
// multi-identifier ReadDataByIdentifier responses.
type DataFormat[T any] struct {
	parsed *T
	raw    []byte
}

// ParsedFormat wraps a fully decoded response record.
func ParsedFormat[T any](v T) DataFormat[T] {
	return DataFormat[T]{parsed: &v}
}

// RawFormat wraps an undecoded payload.
func RawFormat[T any](raw []byte) DataFormat[T] {
	return DataFormat[T]{raw: raw}
}

// Parsed returns the decoded record and reports whether parsing succeeded.
func (d DataFormat[T]) Parsed() (*T, bool) {
	return d.parsed, d.parsed != nil
}

// Raw returns the undecoded payload, nil when the response was parsed.
func (d DataFormat[T]) Raw() []byte {
	return d.raw
}

// IsParsed reports whether the response was decoded into its typed record.
func (d DataFormat[T]) IsParsed() bool {
	return d.parsed != nil
}
