package patch

import "bytes"

// writeRecord appends the wire encoding of a single record to buf.
func writeRecord(buf *bytes.Buffer, r Record) {
	switch rec := r.(type) {
	case CopySameRecord:
		buf.WriteByte(byte(TagCopySame))
	case CopyRunRecord:
		buf.WriteByte(byte(TagCopyRun))
		buf.WriteByte(byte(rec.Count - 1))
	case CopyOffsetRecord:
		buf.WriteByte(byte(TagCopyOffset))
		buf.WriteByte(byte(rec.Offset >> 16))
		buf.WriteByte(byte(rec.Offset >> 8))
		buf.WriteByte(byte(rec.Offset))
	case XORRecord:
		buf.WriteByte(byte(TagXORRLE))
		buf.WriteByte(byte(len(rec.Payload)))
		buf.Write(rec.Payload)
	case RawRecord:
		buf.WriteByte(byte(TagRaw))
		buf.Write(rec.Data)
	case PartialRecord:
		buf.WriteByte(byte(TagPartial))
		buf.WriteByte(byte(len(rec.Data)))
		buf.Write(rec.Data)
	}
}

// parseRecords walks the record stream of a patch body (everything between
// the header byte and the CRC trailer) and produces the closed-sum Record
// representation, without consulting the reference blob. Boundary
// violations that are visible from the byte layout alone -- a record cut
// off mid-payload, an unrecognized tag, or bytes trailing a PARTIAL record
// -- are reported here. Violations that require knowing len(ref) (an
// offset or output range past the end of R, an RLE under/overrun) surface
// later, during replay.
func parseRecords(body []byte, blockSize int) ([]Record, error) {
	var recs []Record
	i := 0
	sawPartial := false
	for i < len(body) {
		if sawPartial {
			return nil, ErrTrailingData
		}
		tag := Tag(body[i])
		i++
		switch tag {
		case TagCopySame:
			recs = append(recs, CopySameRecord{})
		case TagCopyRun:
			if i >= len(body) {
				return nil, ErrTruncatedPatch
			}
			n := body[i]
			i++
			recs = append(recs, CopyRunRecord{Count: int(n) + 1})
		case TagCopyOffset:
			if i+3 > len(body) {
				return nil, ErrTruncatedPatch
			}
			off := uint32(body[i])<<16 | uint32(body[i+1])<<8 | uint32(body[i+2])
			i += 3
			recs = append(recs, CopyOffsetRecord{Offset: off})
		case TagXORRLE:
			if i >= len(body) {
				return nil, ErrTruncatedPatch
			}
			l := int(body[i])
			i++
			if i+l > len(body) {
				return nil, ErrTruncatedPatch
			}
			recs = append(recs, XORRecord{Payload: body[i : i+l]})
			i += l
		case TagRaw:
			if i+blockSize > len(body) {
				return nil, ErrTruncatedPatch
			}
			recs = append(recs, RawRecord{Data: body[i : i+blockSize]})
			i += blockSize
		case TagPartial:
			if i >= len(body) {
				return nil, ErrTruncatedPatch
			}
			k := int(body[i])
			i++
			if i+k > len(body) {
				return nil, ErrTruncatedPatch
			}
			recs = append(recs, PartialRecord{Data: body[i : i+k]})
			i += k
			sawPartial = true
		default:
			return nil, ErrUnknownTag
		}
	}
	return recs, nil
}
