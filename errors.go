package nkv

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/nkv/codec"
)

// ErrStoreNotFound is returned by Read when the backing file does not exist
// and the store was not configured with WithEmptyIfMissing.
//
// The wrapped cause satisfies errors.Is(err, os.ErrNotExist).
var ErrStoreNotFound = errors.New("nkv: store not found")

// ParamError reports invalid caller input: an empty key or a value that does
// not map to one of the four supported kinds. It is surfaced before any I/O
// happens and is never retried.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ParamError struct {
	Key    string
	Reason string
	cause  error
}

func (e *ParamError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("nkv: invalid parameter: %s", e.Reason)
	}
	return fmt.Sprintf("nkv: invalid parameter %q: %s", e.Key, e.Reason)
}

func (e *ParamError) Unwrap() error { return e.cause }

// translateError maps lower-layer failures onto the store's error taxonomy.
// Codec errors pass through unchanged so errors.As keeps working on
// *codec.CorruptionError and *codec.EncodingError.
func (s *Store) translateError(err error) error {
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s: %w", ErrStoreNotFound, s.path, err)
	}
	var ce *codec.CorruptionError
	if errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", s.path, ce)
	}
	return err
}
