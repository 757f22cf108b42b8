package gal

import (
	"fmt"
	"strings"
)

type Chip int

const (
	ChipUnknown Chip = iota
	ChipGAL20V8
	ChipGAL22V10
)

// Section names a run of configuration fuses outside the AND array. Entry
// n of the section is at Start + n*Stride; a zero Stride means 1.
type Section struct {
	Name   string
	Start  int
	Len    int
	Stride int
}

// Profile describes the fuse layout of one device. Profiles are shared
// process-wide and must be treated as read-only.
type Profile struct {
	Name       string
	Chip       Chip
	NumPins    int
	TotalFuses int
	NumOLMCs   int
	RowWidth   int

	// RowsPerOLMC holds the number of sum rows per OLMC, either a single
	// entry used for every OLMC or one entry per OLMC.
	RowsPerOLMC []int

	// Columns maps column pair k to the pin driving columns 2k (true input)
	// and 2k+1 (inverted input).
	Columns []int

	// OLMCPins lists the OLMC pins top to bottom.
	OLMCPins []int

	// Control rows are decoded but not interpreted. Preamble rows precede
	// the first OLMC block, OLMCControl rows lead every OLMC block and
	// Postamble rows follow the last one.
	Preamble    []string
	OLMCControl []string
	Postamble   []string

	Polarity Polarity
	Enable   *Enable
	Mode     *ModeBits

	Sections []Section
}

var (
	profile20v8 = Profile{
		Name:        "GAL20V8",
		Chip:        ChipGAL20V8,
		NumPins:     24,
		TotalFuses:  2706,
		NumOLMCs:    8,
		RowWidth:    40,
		RowsPerOLMC: []int{8},
		// [GAL20V8 datasheet, simple mode logic diagram]
		Columns: []int{
			2, 1,
			3, 23,
			4, 22,
			5, 21,
			6, 20,
			7, 17,
			8, 16,
			9, 15,
			10, 14,
			11, 13,
		},
		OLMCPins: []int{22, 21, 20, 19, 18, 17, 16, 15},
		// XOR=1 defines an active high output.
		Polarity: Polarity{Bits: ExternalArray{Base: 2560}, InvertWhen: false},
		// In simple mode AC1=1 turns the OLMC into a dedicated input.
		Enable: &Enable{Bits: ExternalArray{Base: 2632}, InputWhen: true},
		Mode:   &ModeBits{Syn: 2704, AC0: 2705},
		Sections: []Section{
			{Name: "XOR", Start: 2560, Len: 8},
			{Name: "SIG", Start: 2568, Len: 64},
			{Name: "AC1", Start: 2632, Len: 8},
			{Name: "PT", Start: 2640, Len: 64},
			{Name: "SYN", Start: 2704, Len: 1},
			{Name: "AC0", Start: 2705, Len: 1},
		},
	}
	profile22v10 = Profile{
		Name:        "GAL22V10",
		Chip:        ChipGAL22V10,
		NumPins:     24,
		TotalFuses:  5892,
		NumOLMCs:    10,
		RowWidth:    44,
		RowsPerOLMC: []int{8, 10, 12, 14, 16, 16, 14, 12, 10, 8},
		// [GAL22V10 datasheet page 5]
		Columns: []int{
			1, 23,
			2, 22,
			3, 21,
			4, 20,
			5, 19,
			6, 18,
			7, 17,
			8, 16,
			9, 15,
			10, 14,
			11, 13,
		},
		OLMCPins:    []int{23, 22, 21, 20, 19, 18, 17, 16, 15, 14},
		Preamble:    []string{"AR"},
		OLMCControl: []string{"OE"},
		Postamble:   []string{"SP"},
		// S0=0 defines an active low output, printed without a prefix.
		// S0=1 defines an active high output, printed with one.
		// [GAL22V10 datasheet page 4]
		Polarity: Polarity{Bits: ExternalArray{Base: 5808, Stride: 2}, InvertWhen: true},
		Sections: []Section{
			{Name: "S0", Start: 5808, Len: 10, Stride: 2},
			{Name: "S1", Start: 5809, Len: 10, Stride: 2},
			{Name: "SIG", Start: 5828, Len: 64},
		},
	}
)

// ParseChip resolves a built-in device selector. Matching is
// case-insensitive and accepts CUPL-style names like g22v10.
func ParseChip(name string) (Chip, error) {
	switch normalizeDevice(name) {
	case "GAL20V8":
		return ChipGAL20V8, nil
	case "GAL22V10":
		return ChipGAL22V10, nil
	default:
		return ChipUnknown, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
}

// ChipFromDeviceName guesses the device from a free-form name such as the
// one recorded in a JEDEC header ("GAL22V10-15LP", "g20v8as").
func ChipFromDeviceName(name string) Chip {
	n := normalizeDevice(name)
	switch {
	case strings.Contains(n, "20V8"):
		return ChipGAL20V8
	case strings.Contains(n, "22V10"):
		return ChipGAL22V10
	default:
		return ChipUnknown
	}
}

func normalizeDevice(name string) string {
	// Accept CUPL-style names like g20v8, g22v10.
	// Normalize to GALxxVx for internal use.
	var buf []rune
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			buf = append(buf, r)
			continue
		}
		if r >= 'a' && r <= 'z' {
			buf = append(buf, r-('a'-'A'))
			continue
		}
		if r >= '0' && r <= '9' {
			buf = append(buf, r)
		}
	}
	upper := string(buf)
	if len(upper) >= 5 && upper[0] == 'G' && !strings.HasPrefix(upper, "GAL") {
		upper = "GAL" + upper[1:]
	}
	return upper
}

// Profile returns the built-in profile of c, or nil for ChipUnknown.
func (c Chip) Profile() *Profile {
	switch c {
	case ChipGAL20V8:
		return &profile20v8
	case ChipGAL22V10:
		return &profile22v10
	default:
		return nil
	}
}

func (c Chip) Name() string {
	if p := c.Profile(); p != nil {
		return p.Name
	}
	return "unknown"
}

// NumRowsForOLMC returns the number of sum rows of an OLMC, excluding its
// control rows.
func (p *Profile) NumRowsForOLMC(olmc int) int {
	if len(p.RowsPerOLMC) == 1 {
		return p.RowsPerOLMC[0]
	}
	return p.RowsPerOLMC[olmc]
}

// blockRows is the height of an OLMC block including its control rows.
func (p *Profile) blockRows(olmc int) int {
	return len(p.OLMCControl) + p.NumRowsForOLMC(olmc)
}

// BlockStart returns the first row of an OLMC block. The block starts
// with the OLMC's control rows, followed by its sum rows.
func (p *Profile) BlockStart(olmc int) int {
	row := len(p.Preamble)
	for i := 0; i < olmc; i++ {
		row += p.blockRows(i)
	}
	return row
}

// Bounds define the sum row range of an OLMC.
type Bounds struct {
	StartRow int
	MaxRows  int
}

func (p *Profile) BoundsForOLMC(olmc int) Bounds {
	return Bounds{
		StartRow: p.BlockStart(olmc) + len(p.OLMCControl),
		MaxRows:  p.NumRowsForOLMC(olmc),
	}
}

// NumRows returns the number of rows in the AND array.
func (p *Profile) NumRows() int {
	return p.BlockStart(p.NumOLMCs) + len(p.Postamble)
}

// Row returns the fuses of one AND array row.
func (p *Profile) Row(f Fuses, row int) Fuses {
	start := row * p.RowWidth
	return f[start : start+p.RowWidth]
}

// ColumnPin returns the literal carried by an AND array column.
func (p *Profile) ColumnPin(col int) Pin {
	return Pin{Pin: p.Columns[col/2], Neg: col&1 == 1}
}

// PinToColumn returns the column carrying pin, true or inverted.
func (p *Profile) PinToColumn(pin Pin) (int, error) {
	for k, c := range p.Columns {
		if c != pin.Pin {
			continue
		}
		if pin.Neg {
			return 2*k + 1, nil
		}
		return 2 * k, nil
	}
	return 0, fmt.Errorf("pin %d is not an input of %s", pin.Pin, p.Name)
}

// Validate checks that every table of the profile is consistent with its
// fuse count.
func (p *Profile) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidProfile, p.Name, fmt.Sprintf(format, args...))
	}
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	case p.NumOLMCs <= 0:
		return fail("no OLMCs")
	case p.RowWidth <= 0 || p.RowWidth%2 != 0:
		return fail("row width %d is not a positive even number", p.RowWidth)
	case len(p.Columns)*2 != p.RowWidth:
		return fail("%d column pairs do not cover a row of %d fuses", len(p.Columns), p.RowWidth)
	case len(p.OLMCPins) != p.NumOLMCs:
		return fail("%d OLMC pins for %d OLMCs", len(p.OLMCPins), p.NumOLMCs)
	case len(p.RowsPerOLMC) != 1 && len(p.RowsPerOLMC) != p.NumOLMCs:
		return fail("rows per OLMC must have 1 or %d entries, got %d", p.NumOLMCs, len(p.RowsPerOLMC))
	case p.Polarity.Bits == nil:
		return fail("no polarity scheme")
	}
	for _, n := range p.RowsPerOLMC {
		if n < 0 {
			return fail("negative row count %d", n)
		}
	}
	for _, pin := range append(append([]int{}, p.Columns...), p.OLMCPins...) {
		if pin < 1 || pin > 63 {
			return fail("pin %d cannot be given a letter", pin)
		}
		if p.NumPins > 0 && pin > p.NumPins {
			return fail("pin %d out of range for %d pins", pin, p.NumPins)
		}
	}
	// Every column pair and every OLMC must decode to its own symbol.
	if pin, dup := duplicate(p.Columns); dup {
		return fail("pin %d drives more than one column pair", pin)
	}
	if pin, dup := duplicate(p.OLMCPins); dup {
		return fail("pin %d assigned to more than one OLMC", pin)
	}
	if n := p.NumRows() * p.RowWidth; n > p.TotalFuses {
		return fail("AND array needs %d fuses, device has %d", n, p.TotalFuses)
	}
	inRange := func(what string, addr int) error {
		if addr < 0 || addr >= p.TotalFuses {
			return fail("%s address %d outside %d fuses", what, addr, p.TotalFuses)
		}
		return nil
	}
	for i := 0; i < p.NumOLMCs; i++ {
		if err := inRange("polarity", p.Polarity.Bits.Address(p, i)); err != nil {
			return err
		}
		if p.Enable != nil {
			if err := inRange("enable", p.Enable.Bits.Address(p, i)); err != nil {
				return err
			}
		}
	}
	if p.Mode != nil {
		if err := inRange("SYN", p.Mode.Syn); err != nil {
			return err
		}
		if err := inRange("AC0", p.Mode.AC0); err != nil {
			return err
		}
	}
	return nil
}

func duplicate(pins []int) (int, bool) {
	seen := make(map[int]bool, len(pins))
	for _, pin := range pins {
		if seen[pin] {
			return pin, true
		}
		seen[pin] = true
	}
	return 0, false
}

// FuseName returns a human readable location for a fuse index.
func (p *Profile) FuseName(idx int) string {
	if idx < 0 || idx >= p.TotalFuses {
		return fmt.Sprintf("unknown(%d)", idx)
	}
	if idx < p.NumRows()*p.RowWidth {
		row := idx / p.RowWidth
		col := idx % p.RowWidth
		if row < len(p.Preamble) {
			return fmt.Sprintf("Logic %s col%d", p.Preamble[row], col)
		}
		for i := 0; i < p.NumOLMCs; i++ {
			start := p.BlockStart(i)
			if row < start+p.blockRows(i) {
				local := row - start
				return fmt.Sprintf("Logic OLMC(pin%d) row%d/%d col%d", p.OLMCPins[i], local, p.blockRows(i), col)
			}
		}
		return fmt.Sprintf("Logic %s col%d", p.Postamble[row-p.BlockStart(p.NumOLMCs)], col)
	}
	for _, s := range p.Sections {
		stride := s.Stride
		if stride == 0 {
			stride = 1
		}
		off := idx - s.Start
		if off < 0 || off%stride != 0 || off/stride >= s.Len {
			continue
		}
		if s.Len == 1 {
			return s.Name
		}
		return fmt.Sprintf("%s[%d]", s.Name, off/stride)
	}
	return fmt.Sprintf("fuse[%d]", idx)
}
