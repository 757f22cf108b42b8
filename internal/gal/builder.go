package gal

import "fmt"

// OLMC describes how one output cell is programmed.
type OLMC struct {
	Input    bool // dedicated input, only valid with an Enable scheme
	Inverted bool // output symbol printed with '/'
	Terms    []Term
	Control  map[string]Term // keyed by Profile.OLMCControl names
}

// Blueprint describes a programmed device. BuildFuses turns it into the
// fuse array the decoder reads back.
type Blueprint struct {
	Profile *Profile
	Mode    Mode
	Sig     []byte
	OLMC    []OLMC
	Control map[string]Term // keyed by Profile.Preamble/Postamble names
}

func NewBlueprint(p *Profile) Blueprint {
	return Blueprint{
		Profile: p,
		Mode:    ModeSimple,
		OLMC:    make([]OLMC, p.NumOLMCs),
		Control: make(map[string]Term),
	}
}

// BuildFuses constructs a fuse array from a blueprint. Fuses start intact,
// so rows without terms read back as unused.
func BuildFuses(bp Blueprint) (Fuses, error) {
	p := bp.Profile
	if len(bp.OLMC) != p.NumOLMCs {
		return nil, fmt.Errorf("%s: blueprint has %d OLMCs, want %d", p.Name, len(bp.OLMC), p.NumOLMCs)
	}
	f := make(Fuses, p.TotalFuses)
	for i := range f {
		f[i] = true
	}

	setMode(f, p, bp.Mode)
	setSig(f, p, bp.Sig)
	for i, olmc := range bp.OLMC {
		if err := setOLMC(f, p, i, olmc); err != nil {
			return nil, err
		}
	}
	if err := setGlobalControl(f, p, bp.Control); err != nil {
		return nil, err
	}
	return f, nil
}

func setMode(f Fuses, p *Profile, m Mode) {
	if p.Mode == nil {
		return
	}
	f[p.Mode.Syn], f[p.Mode.AC0] = m.Bits()
}

func setSig(f Fuses, p *Profile, sig []byte) {
	for _, s := range p.Sections {
		if s.Name != "SIG" {
			continue
		}
		for i := 0; i < len(sig) && i < s.Len/8; i++ {
			c := sig[i]
			for j := 0; j < 8; j++ {
				f[s.Start+i*8+j] = (c<<j)&0x80 != 0
			}
		}
	}
}

func setOLMC(f Fuses, p *Profile, i int, olmc OLMC) error {
	if olmc.Input {
		if p.Enable == nil {
			return fmt.Errorf("%s: OLMC %d cannot be an input", p.Name, i)
		}
		f[p.Enable.Bits.Address(p, i)] = p.Enable.InputWhen
	} else if p.Enable != nil {
		f[p.Enable.Bits.Address(p, i)] = !p.Enable.InputWhen
	}

	inv := p.Polarity.InvertWhen
	if !olmc.Inverted {
		inv = !inv
	}
	f[p.Polarity.Bits.Address(p, i)] = inv

	b := p.BoundsForOLMC(i)
	if len(olmc.Terms) > b.MaxRows {
		return fmt.Errorf("pin %d: too many product terms (max %d)", p.OLMCPins[i], b.MaxRows)
	}
	for n, term := range olmc.Terms {
		if err := setAnd(f, p, b.StartRow+n, term); err != nil {
			return fmt.Errorf("pin %d: %w", p.OLMCPins[i], err)
		}
	}
	block := p.BlockStart(i)
	for name, term := range olmc.Control {
		row := indexOf(p.OLMCControl, name)
		if row < 0 {
			return fmt.Errorf("%s: no OLMC control row %q", p.Name, name)
		}
		if err := setAnd(f, p, block+row, term); err != nil {
			return fmt.Errorf("pin %d %s: %w", p.OLMCPins[i], name, err)
		}
	}
	return nil
}

func setGlobalControl(f Fuses, p *Profile, control map[string]Term) error {
	post := p.BlockStart(p.NumOLMCs)
	for name, term := range control {
		row := indexOf(p.Preamble, name)
		if row < 0 {
			if n := indexOf(p.Postamble, name); n >= 0 {
				row = post + n
			}
		}
		if row < 0 {
			return fmt.Errorf("%s: no control row %q", p.Name, name)
		}
		if err := setAnd(f, p, row, term); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// setAnd connects every pin of term to row by blowing its fuse.
func setAnd(f Fuses, p *Profile, row int, term Term) error {
	if len(term) == 0 {
		return fmt.Errorf("row %d: empty product term", row)
	}
	for _, pin := range term {
		col, err := p.PinToColumn(pin)
		if err != nil {
			return err
		}
		idx := row*p.RowWidth + col
		if idx < 0 || idx >= len(f) {
			return fmt.Errorf("fuse index out of range")
		}
		f[idx] = false
	}
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
