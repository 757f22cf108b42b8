package disasm

import (
	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/gal"
)

// Synthesize decodes the sum rows of one OLMC and returns the product
// terms that are ORed together to drive it. Unused rows are dropped, as
// are rows with every fuse blown: they AND each input with its complement
// and can never be true. The result is empty when no row is programmed.
func Synthesize(p *gal.Profile, f gal.Fuses, olmc int, rec *diag.Recorder) []gal.Term {
	b := p.BoundsForOLMC(olmc)
	var terms []gal.Term
	for n := 0; n < b.MaxRows; n++ {
		row := b.StartRow + n
		term, ok := DecodeRow(p.Columns, p.Row(f, row))
		switch {
		case !ok:
			rec.Emit(diag.LevelTrace, diag.StageRow, olmc, "unused row", map[string]string{"row": itoa(row)})
			continue
		case len(term) == p.RowWidth:
			rec.Emit(diag.LevelTrace, diag.StageRow, olmc, "row always false", map[string]string{"row": itoa(row)})
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		rec.Emit(diag.LevelDebug, diag.StageRow, olmc, "no product terms", map[string]string{
			"pin": itoa(p.OLMCPins[olmc]),
		})
	}
	return terms
}

// Control is a decoded control row. The decoder reports control rows
// without assigning them a meaning.
type Control struct {
	Name   string   `yaml:"name"`
	OLMC   int      `yaml:"olmc"` // diag.NoOLMC for device-wide rows
	Pin    int      `yaml:"pin,omitempty"`
	Row    int      `yaml:"row"`
	Term   gal.Term `yaml:"-"`
	Unused bool     `yaml:"unused"`
}

func decodeControl(p *gal.Profile, f gal.Fuses, name string, olmc, row int, rec *diag.Recorder) Control {
	term, ok := DecodeRow(p.Columns, p.Row(f, row))
	c := Control{Name: name, OLMC: olmc, Row: row, Unused: !ok}
	if olmc != diag.NoOLMC {
		c.Pin = p.OLMCPins[olmc]
	}
	if ok {
		c.Term = term
	}
	fields := map[string]string{"name": name, "row": itoa(row)}
	if ok {
		fields["term"] = term.String()
	} else {
		fields["unused"] = "1"
	}
	rec.Emit(diag.LevelDebug, diag.StageControl, olmc, "control row", fields)
	return c
}

// decodeControls decodes every control row of the profile in row order.
func decodeControls(p *gal.Profile, f gal.Fuses, rec *diag.Recorder) []Control {
	var out []Control
	for i, name := range p.Preamble {
		out = append(out, decodeControl(p, f, name, diag.NoOLMC, i, rec))
	}
	for olmc := 0; olmc < p.NumOLMCs; olmc++ {
		start := p.BlockStart(olmc)
		for i, name := range p.OLMCControl {
			out = append(out, decodeControl(p, f, name, olmc, start+i, rec))
		}
	}
	post := p.BlockStart(p.NumOLMCs)
	for i, name := range p.Postamble {
		out = append(out, decodeControl(p, f, name, diag.NoOLMC, post+i, rec))
	}
	return out
}
