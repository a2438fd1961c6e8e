package patch

import "errors"

// Error kinds surfaced by Encode, Decode and Inspect. Callers should match
// against these with errors.Is rather than comparing strings.
var (
	// ErrInvalidBlockSize is returned when the block size is zero, not a
	// multiple of 8, or greater than 255 -- either passed to Encode or
	// read back from a patch header by Decode/Inspect.
	ErrInvalidBlockSize = errors.New("patch: invalid block size")

	// ErrTruncatedPatch is returned when the patch is shorter than the
	// minimum 5-byte header+trailer, or a record is cut off mid-payload.
	ErrTruncatedPatch = errors.New("patch: truncated patch")

	// ErrUnknownTag is returned when a record tag byte isn't one of the
	// six defined kinds.
	ErrUnknownTag = errors.New("patch: unknown record tag")

	// ErrMalformedPatch is returned for boundary violations discovered
	// while replaying records against the reference blob: an RLE
	// underrun/overrun, or a record that reads past the end of ref.
	ErrMalformedPatch = errors.New("patch: malformed patch")

	// ErrTrailingData is returned when bytes remain in the record stream
	// after a PARTIAL record, which must be the last record.
	ErrTrailingData = errors.New("patch: trailing data after partial record")

	// ErrChecksumMismatch is returned when the CRC-32 of the reconstructed
	// output doesn't match the patch trailer.
	ErrChecksumMismatch = errors.New("patch: checksum mismatch")
)
