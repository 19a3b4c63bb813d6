package codec

import "fmt"

// EncodingError reports a value that cannot be serialized: an empty key or a
// kind outside the four the format supports. It indicates caller input that
// slipped past boundary validation, so the store treats it as a defect.
type EncodingError struct {
	Key    string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("nkv: cannot encode %q: %s", e.Key, e.Reason)
}

// CorruptionError reports on-disk content that does not parse per the tagging
// rule. Record is the 1-based record number; 0 means the failure precedes the
// first record (header).
//
// The underlying parse error, if any, can be accessed via errors.Unwrap.
type CorruptionError struct {
	Record int
	Reason string
	cause  error
}

func (e *CorruptionError) Error() string {
	if e.Record == 0 {
		return fmt.Sprintf("nkv: corrupt store: %s", e.Reason)
	}
	return fmt.Sprintf("nkv: corrupt record %d: %s", e.Record, e.Reason)
}

func (e *CorruptionError) Unwrap() error { return e.cause }

func corruptf(record int, cause error, format string, args ...any) *CorruptionError {
	return &CorruptionError{
		Record: record,
		Reason: fmt.Sprintf(format, args...),
		cause:  cause,
	}
}
