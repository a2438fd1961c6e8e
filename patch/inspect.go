package patch

// Histogram summarizes a patch's header and record-stream composition
// without needing the reference blob -- useful for the CLI's "info"
// subcommand and for quick sanity checks on patch size.
type Histogram struct {
	BlockSize  int
	NumRecords int
	Counts     map[Tag]int
}

// Inspect parses a patch's header and record stream -- everything that
// doesn't require the reference blob -- and reports a per-tag count.
// It does not verify the checksum trailer, since that requires replaying
// against ref.
func Inspect(p []byte) (*Histogram, error) {
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

	recs, err := parseRecords(body, blockSize)
	if err != nil {
		return nil, err
	}
	h := &Histogram{
		BlockSize:  blockSize,
		NumRecords: len(recs),
		Counts:     make(map[Tag]int),
	}
	for _, r := range recs {
		h.Counts[r.tag()]++
	}
	return h, nil
}
