package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/zissis-pap/zipper/blobio"
	"github.com/zissis-pap/zipper/history"
	"github.com/zissis-pap/zipper/patch"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected <patch>, got %d positional args", fs.NArg())
	}
	patchPath := fs.Arg(0)

	p, err := blobio.Load(patchPath)
	if err != nil {
		return err
	}
	h, err := patch.Inspect(p)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("block size:  %d\n", h.BlockSize)
	fmt.Printf("records:     %d\n", h.NumRecords)
	for _, tag := range []patch.Tag{
		patch.TagCopySame, patch.TagCopyRun, patch.TagCopyOffset,
		patch.TagXORRLE, patch.TagRaw, patch.TagPartial,
	} {
		if n := h.Counts[tag]; n > 0 {
			fmt.Printf("  %-12s %d\n", tag, n)
		}
	}

	if m, ok := lookupProvenance(patchPath); ok {
		fmt.Printf("produced from: %s -> %s\n", m.OldPath, m.NewPath)
	}
	return nil
}

func lookupProvenance(patchPath string) (history.Metadata, bool) {
	dir := filepath.Join(filepath.Dir(patchPath), ".zipper-history")
	s, err := history.Open(dir)
	if err != nil {
		return history.Metadata{}, false
	}
	defer s.Close()

	m, err := s.Lookup(filepath.Base(patchPath))
	if err != nil {
		return history.Metadata{}, false
	}
	return m, true
}
