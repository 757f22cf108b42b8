package disasm

import "github.com/pborges/galdis/internal/gal"

// DecodeRow turns one AND array row into a product term. Column c belongs
// to pin columns[c/2]; even columns carry the true input and odd columns
// the inverted one. Every blown fuse connects its input to the AND gate.
//
// A row without a blown fuse is reported as unused (ok is false): it
// constrains nothing and is treated as an unprogrammed row.
func DecodeRow(columns []int, row gal.Fuses) (term gal.Term, ok bool) {
	for c, intact := range row {
		if intact {
			continue
		}
		term = append(term, gal.Pin{Pin: columns[c/2], Neg: c&1 == 1})
	}
	return term, len(term) > 0
}
