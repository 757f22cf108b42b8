package testutil

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/pborges/galdis/internal/gal"
)

// MustBuild builds the fuse array of a blueprint or fails the test.
func MustBuild(t testing.TB, bp gal.Blueprint) gal.Fuses {
	t.Helper()
	f, err := gal.BuildFuses(bp)
	if err != nil {
		t.Fatalf("build fuses: %v", err)
	}
	return f
}

// Terms is a shorthand for writing product terms in tests: each string is
// one term of space separated pin numbers, a leading '/' inverts a pin.
//
//	Terms("1 /2", "3") // A * /B + C
func Terms(pins ...string) []gal.Term {
	terms := make([]gal.Term, 0, len(pins))
	for _, s := range pins {
		var term gal.Term
		for _, f := range strings.Fields(s) {
			neg := strings.HasPrefix(f, "/")
			n, err := strconv.Atoi(strings.TrimPrefix(f, "/"))
			if err != nil {
				panic(fmt.Sprintf("testutil.Terms: bad pin %q", f))
			}
			term = append(term, gal.Pin{Pin: n, Neg: neg})
		}
		terms = append(terms, term)
	}
	return terms
}

// CompareFuses compares two fuse arrays of profile p and returns a
// human-readable diff, empty when they are equal.
func CompareFuses(p *gal.Profile, got, want gal.Fuses) string {
	if len(got) != len(want) {
		return fmt.Sprintf("fuse length mismatch: got %d want %d", len(got), len(want))
	}
	var buf bytes.Buffer
	mismatches := 0
	for i := range got {
		if got[i] == want[i] {
			continue
		}
		mismatches++
		fmt.Fprintf(&buf, "  fuse[%d] %s: got=%c want=%c\n", i, p.FuseName(i), bitChar(got[i]), bitChar(want[i]))
		if mismatches >= 40 {
			fmt.Fprintf(&buf, "  ... (%d+ mismatches, truncated)\n", mismatches)
			break
		}
	}
	if mismatches == 0 {
		return ""
	}
	return fmt.Sprintf("%d fuse mismatches:\n%s", mismatches, buf.String())
}

func bitChar(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}
