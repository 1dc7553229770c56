package block

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrBufferSize        = errors.New("block buffer size mismatch")

	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrBIDMismatch       = errors.New("block id mismatch")
	ErrSizeMismatch      = errors.New("block size mismatch")

	ErrEmptyBlock       = errors.New("block has no entries")
	ErrPaddingNotZero   = errors.New("padding is not zero")
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrUnsupportedLevel = errors.New("unsupported block level")

	ErrTooManyEntries = errors.New("too many entries")
	ErrBlockTooLarge  = errors.New("block too large")
	ErrIDOverflow     = errors.New("identifier does not fit format")
	ErrBIDKind        = errors.New("block id internal flag does not match block type")
)

// IntegrityError describes a field of an on-disk block that does not hold
// the expected value. It unwraps to one of the sentinel errors above.
type IntegrityError struct {
	Err   error
	Field string
	Got   uint64
	Want  uint64
	BREF  BREF

	// set instead of Want when more than one value is accepted
	Expected string
}

func (e *IntegrityError) Error() string {
	expected := e.Expected
	if expected == "" {
		expected = fmt.Sprintf("0x%x", e.Want)
	}
	return fmt.Sprintf("%s: %s is 0x%x, expected %s (bref=%s)", e.Err, e.Field, e.Got, expected, e.BREF)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func integrityErr(err error, field string, got, want uint64, bref BREF) error {
	return &IntegrityError{Err: err, Field: field, Got: got, Want: want, BREF: bref}
}
