package main

import (
	"flag"
	"fmt"

	"github.com/zissis-pap/zipper/blobio"
	"github.com/zissis-pap/zipper/patch"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	out := fs.String("out", "rebuilt.bin", "output path for the reconstructed blob")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("decode: expected <reference> <patch>, got %d positional args", fs.NArg())
	}
	refPath, patchPath := fs.Arg(0), fs.Arg(1)

	ref, err := blobio.Load(refPath)
	if err != nil {
		return err
	}
	p, err := blobio.Load(patchPath)
	if err != nil {
		return err
	}

	target, err := patch.Decode(ref, p)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if _, err := blobio.Save(*out, target, false); err != nil {
		return err
	}
	printSuccess("wrote %s (%d bytes)", *out, len(target))
	return nil
}
