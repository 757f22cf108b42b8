package eqn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pborges/galdis/internal/gal"
)

// FromEquations builds a listing from decoded equations.
func FromEquations(eqs []gal.Equation) *Listing {
	l := &Listing{}
	for _, e := range eqs {
		out := &Equation{Output: e.Output.String() + " ="}
		for _, t := range e.Terms {
			term := &Term{True: len(t) == 0}
			for _, p := range t {
				term.Literals = append(term.Literals, &Literal{Neg: p.Neg, Name: string(gal.Letter(p.Pin))})
			}
			out.Terms = append(out.Terms, term)
		}
		l.Equations = append(l.Equations, out)
	}
	return l
}

// Diff describes one output whose equation differs between two listings.
type Diff struct {
	Output  string
	Message string
	Missing []string // terms expected but not found
	Extra   []string // terms found but not expected
}

func (d Diff) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Output, d.Message)
	for _, t := range d.Missing {
		fmt.Fprintf(&b, "\n  - %s", t)
	}
	for _, t := range d.Extra {
		fmt.Fprintf(&b, "\n  + %s", t)
	}
	return b.String()
}

type normalized struct {
	inverted bool
	terms    map[string]bool
}

// termKey orders the literals of a term so that terms compare as sets.
func termKey(t *Term) string {
	if t.True {
		return "1"
	}
	lits := make([]string, len(t.Literals))
	for i, l := range t.Literals {
		lits[i] = l.String()
	}
	sort.Slice(lits, func(i, j int) bool {
		return strings.TrimPrefix(lits[i], "/")+lits[i] < strings.TrimPrefix(lits[j], "/")+lits[j]
	})
	return strings.Join(lits, " * ")
}

func normalize(l *Listing) (map[string]normalized, []string) {
	out := make(map[string]normalized)
	var order []string
	for _, e := range l.Equations {
		name := e.OutputName()
		n := normalized{inverted: strings.HasPrefix(name, "/"), terms: make(map[string]bool)}
		name = strings.TrimPrefix(name, "/")
		for _, t := range e.Terms {
			n.terms[termKey(t)] = true
		}
		if _, dup := out[name]; !dup {
			order = append(order, name)
		}
		out[name] = n
	}
	return out, order
}

// Compare reports the outputs whose equations differ. Terms are compared
// as sets of literal sets, so neither term order nor literal order
// matters.
func Compare(got, want *Listing) []Diff {
	g, gotOrder := normalize(got)
	w, wantOrder := normalize(want)

	var diffs []Diff
	for _, name := range wantOrder {
		wn := w[name]
		gn, ok := g[name]
		if !ok {
			diffs = append(diffs, Diff{Output: name, Message: "missing output"})
			continue
		}
		if gn.inverted != wn.inverted {
			diffs = append(diffs, Diff{Output: name, Message: fmt.Sprintf("polarity differs: got %s, want %s", polarity(gn.inverted), polarity(wn.inverted))})
		}
		d := Diff{Output: name, Message: "terms differ"}
		for t := range wn.terms {
			if !gn.terms[t] {
				d.Missing = append(d.Missing, t)
			}
		}
		for t := range gn.terms {
			if !wn.terms[t] {
				d.Extra = append(d.Extra, t)
			}
		}
		if len(d.Missing) > 0 || len(d.Extra) > 0 {
			sort.Strings(d.Missing)
			sort.Strings(d.Extra)
			diffs = append(diffs, d)
		}
	}
	for _, name := range gotOrder {
		if _, ok := w[name]; !ok {
			diffs = append(diffs, Diff{Output: name, Message: "unexpected output"})
		}
	}
	return diffs
}

func polarity(inverted bool) string {
	if inverted {
		return "inverted"
	}
	return "plain"
}
