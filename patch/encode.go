package patch

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/zissis-pap/zipper/refindex"
	"github.com/zissis-pap/zipper/rle"
)

const (
	// maxBlockSize is implied by the one-byte block-size header and the
	// one-byte length prefixes on XOR_RLE and PARTIAL payloads.
	maxBlockSize = 255
	// maxCopyRunBlocks is the largest number of blocks a single
	// COPY_RUN record can cover: its one-byte count field encodes
	// Count-1, so Count tops out at 256.
	maxCopyRunBlocks = 256
	// maxOffset is the largest reference offset representable in the
	// 3-byte big-endian COPY_OFFSET field.
	maxOffset = 1<<24 - 1
)

func validateBlockSize(b int) error {
	if b <= 0 || b%8 != 0 || b > maxBlockSize {
		return ErrInvalidBlockSize
	}
	return nil
}

// Encode builds a patch P such that Decode(ref, P) reproduces target
// bit-for-bit. blockSize must be a positive multiple of 8, no greater than
// 255.
func Encode(ref, target []byte, blockSize int) ([]byte, error) {
	if err := validateBlockSize(blockSize); err != nil {
		return nil, err
	}
	idx := refindex.Build(ref, blockSize)
	recs := buildRecords(ref, target, blockSize, idx)

	var out bytes.Buffer
	out.WriteByte(byte(blockSize))
	for _, r := range recs {
		writeRecord(&out, r)
	}
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc32.ChecksumIEEE(target))
	out.Write(crcBuf[:])
	return out.Bytes(), nil
}

func buildRecords(ref, target []byte, blockSize int, idx *refindex.Index) []Record {
	var recs []Record
	n := len(target)
	p := 0
	for p+blockSize <= n {
		if p+blockSize <= len(ref) && bytes.Equal(ref[p:p+blockSize], target[p:p+blockSize]) {
			run := sameRunLength(ref, target, p, blockSize, n)
			if run == 1 {
				recs = append(recs, CopySameRecord{})
			} else {
				recs = append(recs, CopyRunRecord{Count: run})
			}
			p += run * blockSize
			continue
		}
		recs = append(recs, selectRecord(ref, target, p, blockSize, idx))
		p += blockSize
	}
	if p < n {
		recs = append(recs, PartialRecord{Data: append([]byte(nil), target[p:]...)})
	}
	return recs
}

// sameRunLength greedily extends a same-position match starting at p,
// returning the number of consecutive whole blocks (at least 1, capped at
// maxCopyRunBlocks) that satisfy the COPY_SAME relation.
func sameRunLength(ref, target []byte, p, blockSize, targetLen int) int {
	run := 1
	for run < maxCopyRunBlocks {
		next := p + run*blockSize
		if next+blockSize > targetLen || next+blockSize > len(ref) {
			break
		}
		if !bytes.Equal(ref[next:next+blockSize], target[next:next+blockSize]) {
			break
		}
		run++
	}
	return run
}

type candidate struct {
	rec  Record
	cost int
}

// selectRecord picks the cheapest way to encode the block at offset p,
// among an indexed offset match, an XOR/RLE delta, and RAW -- in that
// priority order on ties.
func selectRecord(ref, target []byte, p, blockSize int, idx *refindex.Index) Record {
	block := target[p : p+blockSize]
	var candidates []candidate

	if off, ok := idx.Lookup(block); ok && off != p && off <= maxOffset && off+blockSize <= len(ref) {
		candidates = append(candidates, candidate{CopyOffsetRecord{Offset: uint32(off)}, 4})
	}
	if p+blockSize <= len(ref) {
		delta := xorBlocks(ref[p:p+blockSize], block)
		payload := rle.Encode(delta)
		if len(payload) <= maxBlockSize && 1+len(payload) < blockSize+1 {
			candidates = append(candidates, candidate{XORRecord{Payload: payload}, 2 + len(payload)})
		}
	}
	candidates = append(candidates, candidate{RawRecord{Data: append([]byte(nil), block...)}, blockSize + 1})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.cost < best.cost {
			best = c
		}
	}
	return best.rec
}

func xorBlocks(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
