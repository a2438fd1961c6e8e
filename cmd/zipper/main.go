// Command zipper is a small CLI around the patch package's two
// contracts, encode and decode, plus a handful of convenience
// subcommands -- repl, info, fixture -- that never touch core semantics.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func usage() {
	fmt.Fprintln(os.Stderr, `zipper - block-based binary delta patches

Usage:
  zipper encode [-block N] [-out path] <old> <new>
  zipper decode [-out path] <reference> <patch>
  zipper info <patch>
  zipper repl <old> <new>
  zipper fixture [-records N] <dir>
`)
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
}

func printSuccess(format string, a ...any) {
	fmt.Println(color.GreenString(format, a...))
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "fixture":
		err = runFixture(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}
