package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/crc32"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zissis-pap/zipper/blobio"
	"github.com/zissis-pap/zipper/history"
	"github.com/zissis-pap/zipper/patch"
)

// replSession is an interactive loop over a fixed (old, new) blob pair,
// in the style of the teacher's database CLI: a bufio.Scanner reads
// commands, each command is dispatched by its lowercased first field.
type replSession struct {
	scanner   *bufio.Scanner
	ref, next []byte
	oldPath   string
	blockSize int
	lastPatch []byte
}

func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("repl: expected <old> <new>, got %d positional args", fs.NArg())
	}
	oldPath, newPath := fs.Arg(0), fs.Arg(1)

	ref, err := blobio.Load(oldPath)
	if err != nil {
		return err
	}
	next, err := blobio.Load(newPath)
	if err != nil {
		return err
	}

	s := &replSession{
		scanner:   bufio.NewScanner(os.Stdin),
		ref:       ref,
		next:      next,
		oldPath:   oldPath,
		blockSize: 64,
	}
	s.start()
	return nil
}

func (s *replSession) start() {
	s.printHelp()
	s.printPrompt()
	for s.scanner.Scan() {
		s.processInput(s.scanner.Text())
		s.printPrompt()
	}
}

func (s *replSession) printHelp() {
	fmt.Println(`
zipper REPL

Available Commands:
  BLOCK <n>   Set the block size used by ENCODE (default 64)
  ENCODE      Encode the loaded old/new pair with the current block size
  DECODE      Decode the last ENCODE's patch and compare against new
  INFO        Show the last patch's header and record-tag histogram
  EXIT        Terminate this session
`)
}

func (s *replSession) printPrompt() {
	fmt.Print("> ")
}

func (s *replSession) processInput(line string) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return
	}
	switch strings.ToLower(fields[0]) {
	default:
		fmt.Printf("Unknown command %q\n", fields[0])
	case "block":
		s.processBlockCommand(fields[1:])
	case "encode":
		s.processEncodeCommand()
	case "decode":
		s.processDecodeCommand()
	case "info":
		s.processInfoCommand()
	case "exit":
		os.Exit(0)
	}
}

func (s *replSession) processBlockCommand(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: BLOCK <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printError(err)
		return
	}
	s.blockSize = n
	printSuccess("block size set to %d", n)
}

func (s *replSession) processEncodeCommand() {
	p, err := patch.Encode(s.ref, s.next, s.blockSize)
	if err != nil {
		printError(err)
		return
	}
	s.lastPatch = p
	printSuccess("encoded %d -> %d bytes (block size %d)", len(s.next), len(p), s.blockSize)

	recordProvenance(s.oldPath+"_patch.bin", history.Metadata{
		OldPath:       s.oldPath,
		BlockSize:     s.blockSize,
		PatchSize:     len(p),
		TargetCRC32:   crc32.ChecksumIEEE(s.next),
		CreatedAtUnix: time.Now().Unix(),
	})
}

func (s *replSession) processDecodeCommand() {
	if s.lastPatch == nil {
		fmt.Println("No patch yet; run ENCODE first.")
		return
	}
	out, err := patch.Decode(s.ref, s.lastPatch)
	if err != nil {
		printError(err)
		return
	}
	if string(out) == string(s.next) {
		printSuccess("decoded patch matches new blob (%d bytes)", len(out))
	} else {
		printError(fmt.Errorf("decoded patch does NOT match new blob"))
	}
}

func (s *replSession) processInfoCommand() {
	if s.lastPatch == nil {
		fmt.Println("No patch yet; run ENCODE first.")
		return
	}
	h, err := patch.Inspect(s.lastPatch)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("block size: %d, records: %d\n", h.BlockSize, h.NumRecords)
	for tag, n := range h.Counts {
		fmt.Printf("  %-12s %d\n", tag, n)
	}
}
