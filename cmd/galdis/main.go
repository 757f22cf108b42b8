// Command galdis disassembles GAL20V8 and GAL22V10 JEDEC fuse maps into
// sum-of-products equations.
//
// Usage:
//
//	galdis [-d device] [-v]... <file.jed>
//	galdis check <file.jed> <expected.eqn>
//	galdis events <file.glog>
//	galdis devices
//
// Exit codes: 0 success, 1 I/O or file format error, 2 fuse count
// mismatch, 3 unsupported device mode, 4 unknown device, 5 check found
// differences.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pborges/galdis/internal/gal"
)

const (
	exitOK = iota
	exitIO
	exitFuseCount
	exitMode
	exitDevice
	exitCheck
)

var errCheckFailed = errors.New("listing differs from expected equations")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, gal.ErrFuseCountMismatch):
		return exitFuseCount
	case errors.Is(err, gal.ErrUnsupportedMode):
		return exitMode
	case errors.Is(err, gal.ErrUnknownDevice):
		return exitDevice
	case errors.Is(err, errCheckFailed):
		return exitCheck
	default:
		return exitIO
	}
}
