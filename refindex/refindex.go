// Package refindex builds a lookup from block-sized slices of a reference
// blob to the earliest offset at which each slice occurs, preferring
// block-aligned offsets over unaligned ones when both exist for the same
// key. It has no knowledge of the wider patch format.
package refindex

// Index is a read-only mapping built once per encode call. It is safe for
// concurrent reads once Build has returned.
type Index struct {
	offsets   map[string]int
	blockSize int
}

// Build scans ref in two passes: first every block-aligned offset, then
// every unaligned offset, inserting each key only if it is absent. Because
// the aligned pass runs first, an aligned offset always wins ties against
// an unaligned offset discovered later for the same key.
func Build(ref []byte, blockSize int) *Index {
	idx := &Index{
		offsets:   make(map[string]int),
		blockSize: blockSize,
	}
	if blockSize <= 0 || len(ref) < blockSize {
		return idx
	}

	for i := 0; i+blockSize <= len(ref); i += blockSize {
		idx.insertIfAbsent(ref[i:i+blockSize], i)
	}
	for i := 0; i+blockSize <= len(ref); i++ {
		idx.insertIfAbsent(ref[i:i+blockSize], i)
	}
	return idx
}

func (idx *Index) insertIfAbsent(key []byte, offset int) {
	k := string(key)
	if _, ok := idx.offsets[k]; !ok {
		idx.offsets[k] = offset
	}
}

// Lookup returns the offset recorded for key in the reference blob the
// index was built from, and whether it was found at all. The offset is the
// earliest block-aligned occurrence if there is one, even when an unaligned
// occurrence comes earlier; otherwise it is the earliest occurrence.
func (idx *Index) Lookup(key []byte) (offset int, ok bool) {
	offset, ok = idx.offsets[string(key)]
	return offset, ok
}
