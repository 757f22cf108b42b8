// Package disasm turns a GAL fuse array back into the sum-of-products
// equations programmed into each output cell.
//
// Decoding is a single forward pass: the fuse count is checked, the
// operating mode is resolved once, then every OLMC is decoded in
// ascending index order, which is the physical top to bottom pin order.
// Nothing is printed; diagnostics are returned as diag.Event values.
package disasm

import (
	"errors"
	"fmt"

	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/gal"
	"github.com/pborges/galdis/internal/minimize"
)

type Options struct {
	// Minimize reduces every equation with Quine-McCluskey.
	Minimize bool
}

// Listing is the result of decoding one fuse array.
type Listing struct {
	Device    string
	Mode      gal.Mode
	Equations []gal.Equation
	Controls  []Control
	Events    []diag.Event
}

// DecodeError is returned when decoding stops. It carries the events
// recorded up to the failure and unwraps to one of the gal sentinel
// errors.
type DecodeError struct {
	Err    error
	Events []diag.Event
}

func (e *DecodeError) Error() string { return e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Events returns the events carried by err, if it is a DecodeError.
func Events(err error) []diag.Event {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Events
	}
	return nil
}

// Decode disassembles f using the layout of p.
func Decode(p *gal.Profile, f gal.Fuses, opts Options) (*Listing, error) {
	rec := &diag.Recorder{}
	fail := func(err error) (*Listing, error) {
		rec.Emit(diag.LevelWarn, diag.StageProfile, diag.NoOLMC, err.Error(), nil)
		return nil, &DecodeError{Err: err, Events: rec.Events}
	}

	rec.Emit(diag.LevelInfo, diag.StageProfile, diag.NoOLMC, "disassembling fuse array", map[string]string{
		"device": p.Name,
		"fuses":  itoa(len(f)),
	})
	if len(f) != p.TotalFuses {
		return fail(fmt.Errorf("%w: found %d, expected %d", gal.ErrFuseCountMismatch, len(f), p.TotalFuses))
	}

	mode, ok := DetectMode(p, f, rec)
	if !ok {
		return fail(fmt.Errorf("%w: %s mode", gal.ErrUnsupportedMode, mode))
	}

	l := &Listing{
		Device:   p.Name,
		Mode:     mode,
		Controls: decodeControls(p, f, rec),
	}
	for olmc := 0; olmc < p.NumOLMCs; olmc++ {
		out, input := ResolveOutput(p, f, olmc, rec)
		if input {
			continue
		}
		terms := Synthesize(p, f, olmc, rec)
		if opts.Minimize {
			terms = minimizeTerms(terms, olmc, rec)
		}
		l.Equations = append(l.Equations, gal.Equation{OLMC: olmc, Output: out, Terms: terms})
	}
	l.Events = rec.Events
	return l, nil
}

func minimizeTerms(terms []gal.Term, olmc int, rec *diag.Recorder) []gal.Term {
	reduced, err := minimize.Terms(terms)
	if err != nil {
		rec.Emit(diag.LevelWarn, diag.StageMinimize, olmc, "equation left unreduced", map[string]string{
			"error": err.Error(),
		})
		return reduced
	}
	if len(reduced) != len(terms) {
		rec.Emit(diag.LevelDebug, diag.StageMinimize, olmc, "equation reduced", map[string]string{
			"before": itoa(len(terms)),
			"after":  itoa(len(reduced)),
		})
	}
	return reduced
}
