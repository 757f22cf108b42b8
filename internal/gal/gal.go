package gal

import "strings"

// Fuses is a fuse array as read from a JEDEC file. An intact fuse is true,
// a blown fuse is false. Fuse arrays are never mutated once loaded.
type Fuses []bool

// Pin represents an input to a term.
type Pin struct {
	Pin int
	Neg bool
}

// Letter is the symbol used for a physical pin: pin 1 is 'A'.
func Letter(pin int) byte {
	return byte(pin + 0x40)
}

func (p Pin) String() string {
	if p.Neg {
		return "/" + string(Letter(p.Pin))
	}
	return string(Letter(p.Pin))
}

// Term is an AND of pins.
type Term []Pin

// String joins the pins with " * ". An empty term is constant true and
// prints as "1".
func (t Term) String() string {
	if len(t) == 0 {
		return "1"
	}
	parts := make([]string, len(t))
	for i, p := range t {
		parts[i] = p.String()
	}
	return strings.Join(parts, " * ")
}

// Contradicts reports whether the term contains a pin together with its
// complement, which makes it constant false.
func (t Term) Contradicts() bool {
	seen := make(map[int]bool, len(t))
	for _, p := range t {
		if neg, ok := seen[p.Pin]; ok && neg != p.Neg {
			return true
		}
		seen[p.Pin] = p.Neg
	}
	return false
}

// TermSeparator joins the terms of an equation when it is printed.
const TermSeparator = "\n   + "

// Equation is an OR of terms driving one OLMC. Output carries the OLMC pin
// and whether its symbol is printed inverted.
type Equation struct {
	OLMC   int
	Output Pin
	Terms  []Term
}

// String formats the equation as "<output> = <term>\n   + <term>...".
// An equation without terms prints as "<output> =", an explicitly empty
// right-hand side.
func (e Equation) String() string {
	if len(e.Terms) == 0 {
		return e.Output.String() + " ="
	}
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String()
	}
	return e.Output.String() + " = " + strings.Join(parts, TermSeparator)
}
