package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/go-faker/faker/v4"

	"github.com/zissis-pap/zipper/blobio"
)

// runFixture generates a synthetic old/new blob pair with a controlled
// amount of drift, the way the teacher's -seed flag populates a demo
// database with faker.Word() records.
func runFixture(args []string) error {
	fs := flag.NewFlagSet("fixture", flag.ContinueOnError)
	records := fs.Int("records", 1000, "number of faker-generated words to build the blobs from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("fixture: expected <dir>, got %d positional args", fs.NArg())
	}
	dir := fs.Arg(0)

	oldBlob := generateBlob(*records)
	newBlob := driftBlob(oldBlob, *records/20+1)

	oldPath := filepath.Join(dir, "old.bin")
	newPath := filepath.Join(dir, "new.bin")
	if _, err := blobio.Save(oldPath, oldBlob, false); err != nil {
		return err
	}
	if _, err := blobio.Save(newPath, newBlob, false); err != nil {
		return err
	}

	printSuccess("wrote %s (%d bytes) and %s (%d bytes)", oldPath, len(oldBlob), newPath, len(newBlob))
	return nil
}

func generateBlob(numWords int) []byte {
	var buf bytes.Buffer
	for i := 0; i < numWords; i++ {
		buf.WriteString(faker.Word())
		buf.WriteByte(' ')
	}
	return buf.Bytes()
}

// driftBlob returns a copy of blob with numEdits single-word
// substitutions scattered through it, simulating a firmware revision
// that changed a handful of fields.
func driftBlob(blob []byte, numEdits int) []byte {
	words := bytes.Fields(blob)
	out := make([][]byte, len(words))
	copy(out, words)

	for i := 0; i < numEdits && len(out) > 0; i++ {
		idx := rand.Intn(len(out))
		out[idx] = []byte(faker.Word())
	}
	return bytes.Join(out, []byte(" "))
}
