// Package history is a small embedded key-value log, adapted from an
// LSM-tree key-value store, repurposed here to record provenance for
// patches produced by this tool: which reference/target blobs and block
// size produced a given patch file, so `zipper info` can answer "how was
// this patch made" without re-reading the original blobs.
//
// It is entirely ambient: nothing in package patch, rle, or refindex
// depends on it, and it never participates in the patch wire format.
package history

import "encoding/binary"

// EventKind distinguishes a recorded provenance entry from a tombstone
// left by Forget -- the same Set/Delete split the teacher's encoder used
// for ordinary key-value writes.
type EventKind uint8

const (
	EventForgotten EventKind = iota
	EventRecorded
)

// envelope is the on-disk (and in-memory) representation of one log
// entry's value: a one-byte kind tag followed by the payload.
type envelope struct {
	kind    EventKind
	payload []byte
}

func encodeEnvelope(kind EventKind, payload []byte) []byte {
	buf := make([]byte, len(payload)+1)
	buf[0] = byte(kind)
	copy(buf[1:], payload)
	return buf
}

func decodeEnvelope(raw []byte) *envelope {
	payload := make([]byte, len(raw)-1)
	copy(payload, raw[1:])
	return &envelope{kind: EventKind(raw[0]), payload: payload}
}

func (e *envelope) isTombstone() bool {
	return e.kind == EventForgotten
}

// Metadata is what gets recorded for each patch: enough to explain how it
// was produced without re-reading the original blobs.
type Metadata struct {
	OldPath       string
	NewPath       string
	BlockSize     int
	PatchSize     int
	TargetCRC32   uint32
	CreatedAtUnix int64
}

// marshalMetadata packs Metadata into a compact varint-framed payload, in
// the same length-prefixed style the teacher's sstable block writer uses
// for keys and values.
func marshalMetadata(m Metadata) []byte {
	buf := make([]byte, 0, len(m.OldPath)+len(m.NewPath)+40)
	var scratch [binary.MaxVarintLen64]byte

	writeString := func(s string) {
		n := binary.PutUvarint(scratch[:], uint64(len(s)))
		buf = append(buf, scratch[:n]...)
		buf = append(buf, s...)
	}
	writeUvarint := func(v uint64) {
		n := binary.PutUvarint(scratch[:], v)
		buf = append(buf, scratch[:n]...)
	}

	writeString(m.OldPath)
	writeString(m.NewPath)
	writeUvarint(uint64(m.BlockSize))
	writeUvarint(uint64(m.PatchSize))
	writeUvarint(uint64(m.TargetCRC32))
	writeUvarint(uint64(m.CreatedAtUnix))
	return buf
}

func unmarshalMetadata(buf []byte) (Metadata, error) {
	var m Metadata
	off := 0

	readString := func() (string, error) {
		l, n := binary.Uvarint(buf[off:])
		if n <= 0 {
			return "", errMalformedMetadata
		}
		off += n
		if off+int(l) > len(buf) {
			return "", errMalformedMetadata
		}
		s := string(buf[off : off+int(l)])
		off += int(l)
		return s, nil
	}
	readUvarint := func() (uint64, error) {
		v, n := binary.Uvarint(buf[off:])
		if n <= 0 {
			return 0, errMalformedMetadata
		}
		off += n
		return v, nil
	}

	var err error
	if m.OldPath, err = readString(); err != nil {
		return Metadata{}, err
	}
	if m.NewPath, err = readString(); err != nil {
		return Metadata{}, err
	}
	blockSize, err := readUvarint()
	if err != nil {
		return Metadata{}, err
	}
	patchSize, err := readUvarint()
	if err != nil {
		return Metadata{}, err
	}
	crc, err := readUvarint()
	if err != nil {
		return Metadata{}, err
	}
	createdAt, err := readUvarint()
	if err != nil {
		return Metadata{}, err
	}
	m.BlockSize = int(blockSize)
	m.PatchSize = int(patchSize)
	m.TargetCRC32 = uint32(crc)
	m.CreatedAtUnix = int64(createdAt)
	return m, nil
}
