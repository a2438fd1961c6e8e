package patch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/zissis-pap/zipper/rle"
)

// minPatchSize is the header byte plus the 4-byte CRC trailer -- the
// smallest a patch can legally be, describing a zero-length target.
const minPatchSize = 5

// Decode replays a patch P against a reference blob ref and returns the
// reconstructed target, or one of the error kinds in errors.go.
func Decode(ref, p []byte) ([]byte, error) {
	if len(p) < 1 {
		return nil, ErrTruncatedPatch
	}
	blockSize := int(p[0])
	if blockSize == 0 || blockSize%8 != 0 || blockSize > maxBlockSize {
		return nil, ErrInvalidBlockSize
	}
	if len(p) < minPatchSize {
		return nil, ErrTruncatedPatch
	}
	body := p[1 : len(p)-4]
	trailer := p[len(p)-4:]

	recs, err := parseRecords(body, blockSize)
	if err != nil {
		return nil, err
	}
	out, err := replay(ref, recs, blockSize)
	if err != nil {
		return nil, err
	}

	var want [4]byte
	binary.BigEndian.PutUint32(want[:], crc32.ChecksumIEEE(out))
	if !bytes.Equal(want[:], trailer) {
		return nil, ErrChecksumMismatch
	}
	return out, nil
}

// replay reconstructs the output blob by applying each parsed record
// against ref in order.
func replay(ref []byte, recs []Record, blockSize int) ([]byte, error) {
	var out bytes.Buffer
	for _, r := range recs {
		switch rec := r.(type) {
		case CopySameRecord:
			if err := copyFromRef(&out, ref, out.Len(), blockSize); err != nil {
				return nil, err
			}
		case CopyRunRecord:
			for k := 0; k < rec.Count; k++ {
				if err := copyFromRef(&out, ref, out.Len(), blockSize); err != nil {
					return nil, err
				}
			}
		case CopyOffsetRecord:
			if err := copyFromRef(&out, ref, int(rec.Offset), blockSize); err != nil {
				return nil, err
			}
		case XORRecord:
			delta, err := rle.Decode(rec.Payload, blockSize)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
			}
			off := out.Len()
			if off+blockSize > len(ref) {
				return nil, ErrMalformedPatch
			}
			refBlock := ref[off : off+blockSize]
			block := make([]byte, blockSize)
			for k := range block {
				block[k] = refBlock[k] ^ delta[k]
			}
			out.Write(block)
		case RawRecord:
			out.Write(rec.Data)
		case PartialRecord:
			out.Write(rec.Data)
		default:
			return nil, ErrUnknownTag
		}
	}
	return out.Bytes(), nil
}

func copyFromRef(out *bytes.Buffer, ref []byte, offset, blockSize int) error {
	if offset < 0 || offset+blockSize > len(ref) {
		return ErrMalformedPatch
	}
	out.Write(ref[offset : offset+blockSize])
	return nil
}
