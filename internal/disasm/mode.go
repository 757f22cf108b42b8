package disasm

import (
	"strconv"

	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/gal"
)

// DetectMode resolves the operating mode of a fuse array and reports
// whether the decoder implements it. Profiles without mode bits have a
// single mode, which is always Simple.
func DetectMode(p *gal.Profile, f gal.Fuses, rec *diag.Recorder) (gal.Mode, bool) {
	if p.Mode == nil {
		rec.Emit(diag.LevelDebug, diag.StageMode, diag.NoOLMC, "device has no mode bits", map[string]string{
			"mode": gal.ModeSimple.String(),
		})
		return gal.ModeSimple, true
	}
	syn, ac0 := f[p.Mode.Syn], f[p.Mode.AC0]
	mode := gal.ModeFromBits(syn, ac0)
	rec.Emit(diag.LevelDebug, diag.StageMode, diag.NoOLMC, "mode detected", map[string]string{
		"syn":  bit(syn),
		"ac0":  bit(ac0),
		"mode": mode.String(),
	})
	return mode, mode.Implemented()
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
