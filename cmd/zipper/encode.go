package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"log"
	"path/filepath"
	"time"

	"github.com/zissis-pap/zipper/blobio"
	"github.com/zissis-pap/zipper/history"
	"github.com/zissis-pap/zipper/patch"
)

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	block := fs.Int("block", 64, "block size in bytes, a positive multiple of 8, max 255")
	out := fs.String("out", "", "output patch path (default <old>_patch.bin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("encode: expected <old> <new>, got %d positional args", fs.NArg())
	}
	oldPath, newPath := fs.Arg(0), fs.Arg(1)

	outPath := *out
	if outPath == "" {
		outPath = oldPath + "_patch.bin"
	}

	ref, err := blobio.Load(oldPath)
	if err != nil {
		return err
	}
	target, err := blobio.Load(newPath)
	if err != nil {
		return err
	}

	p, err := patch.Encode(ref, target, *block)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if _, err := blobio.Save(outPath, p, false); err != nil {
		return err
	}
	printSuccess("wrote %s (%d bytes, %d -> %d)", outPath, len(p), len(ref), len(target))

	recordProvenance(outPath, history.Metadata{
		OldPath:       oldPath,
		NewPath:       newPath,
		BlockSize:     *block,
		PatchSize:     len(p),
		TargetCRC32:   crc32.ChecksumIEEE(target),
		CreatedAtUnix: time.Now().Unix(),
	})
	return nil
}

// recordProvenance logs how a patch was produced so `zipper info` can
// later answer "how was this made" -- a convenience entirely outside the
// patch format itself, so a failure here is a warning, not a command
// failure.
func recordProvenance(patchPath string, m history.Metadata) {
	dir := filepath.Join(filepath.Dir(patchPath), ".zipper-history")
	s, err := history.Open(dir)
	if err != nil {
		log.Printf("provenance: open %s: %v", dir, err)
		return
	}
	defer s.Close()

	if err := s.Record(filepath.Base(patchPath), m); err != nil {
		log.Printf("provenance: record %s: %v", patchPath, err)
	}
}
