package disasm

import (
	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/gal"
)

// ResolveOutput returns the output symbol of an OLMC and whether the OLMC
// is configured as a dedicated input, in which case it has no equation.
func ResolveOutput(p *gal.Profile, f gal.Fuses, olmc int, rec *diag.Recorder) (out gal.Pin, input bool) {
	addr := p.Polarity.Bits.Address(p, olmc)
	out = gal.Pin{
		Pin: p.OLMCPins[olmc],
		Neg: p.Polarity.Inverted(p, f, olmc),
	}
	fields := map[string]string{
		"pin":            itoa(out.Pin),
		"polarity_fuse":  p.FuseName(addr),
		"polarity_value": bit(f[addr]),
	}
	if p.Enable != nil {
		en := p.Enable.Bits.Address(p, olmc)
		input = p.Enable.InputOnly(p, f, olmc)
		fields["enable_fuse"] = p.FuseName(en)
		fields["enable_value"] = bit(f[en])
	}
	rec.Emit(diag.LevelTrace, diag.StagePolarity, olmc, "olmc configuration", fields)
	if input {
		rec.Emit(diag.LevelDebug, diag.StagePolarity, olmc, "olmc is an input, skipped", map[string]string{
			"pin": itoa(out.Pin),
		})
	}
	return out, input
}
