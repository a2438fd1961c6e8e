// Package blobio loads and saves the reference/target blobs a patch is
// made from. It sits entirely outside the patch wire format (package
// patch never imports it): patch.Encode and patch.Decode work on []byte
// already in memory, and this package's only job is getting bytes to and
// from storage for the CLI's convenience.
package blobio

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// snappySuffix marks a blob as snappy-framed at rest. It is a pure
// storage convenience: a "foo.bin.snappy" file round-trips to the exact
// same bytes a caller would get from "foo.bin" itself.
const snappySuffix = ".snappy"

// Load reads a blob from path, transparently decompressing it first if
// the name carries the snappy suffix.
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blobio: load %s: %w", path, err)
	}
	if !strings.HasSuffix(path, snappySuffix) {
		return raw, nil
	}
	decoded, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("blobio: decompress %s: %w", path, err)
	}
	return decoded, nil
}

// Save writes data to path. When compress is true, the bytes are
// snappy-encoded and the suffix is appended if not already present; Save
// returns the path it actually wrote to, since a compressed save may not
// land at the exact path given.
func Save(path string, data []byte, compress bool) (string, error) {
	if !compress {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("blobio: save %s: %w", path, err)
		}
		return path, nil
	}

	out := path
	if !strings.HasSuffix(out, snappySuffix) {
		out += snappySuffix
	}
	encoded := snappy.Encode(nil, data)
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return "", fmt.Errorf("blobio: save %s: %w", out, err)
	}
	return out, nil
}
