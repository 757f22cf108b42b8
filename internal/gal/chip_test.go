package gal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChip(t *testing.T) {
	cases := []struct {
		in   string
		want Chip
	}{
		{"GAL20V8", ChipGAL20V8},
		{"gal20v8", ChipGAL20V8},
		{"g20v8", ChipGAL20V8},
		{"GAL22V10", ChipGAL22V10},
		{"Gal22v10", ChipGAL22V10},
		{"g22v10", ChipGAL22V10},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseChip(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "GAL16V8", "GAL20V8X", "22V10", "ATF750"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := ParseChip(bad)
			assert.ErrorIs(t, err, ErrUnknownDevice)
		})
	}
}

func TestChipFromDeviceName(t *testing.T) {
	assert.Equal(t, ChipGAL22V10, ChipFromDeviceName("GAL22V10-15LP"))
	assert.Equal(t, ChipGAL20V8, ChipFromDeviceName("g20v8as"))
	assert.Equal(t, ChipUnknown, ChipFromDeviceName("g16v8"))
}

func TestBuiltinProfiles(t *testing.T) {
	for _, c := range []Chip{ChipGAL20V8, ChipGAL22V10} {
		p := c.Profile()
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Validate())
			assert.Equal(t, p.RowWidth, 2*len(p.Columns))
			assert.LessOrEqual(t, p.NumRows()*p.RowWidth, p.TotalFuses)
		})
	}

	p20 := ChipGAL20V8.Profile()
	assert.Equal(t, 2706, p20.TotalFuses)
	assert.Equal(t, 64, p20.NumRows())

	p22 := ChipGAL22V10.Profile()
	assert.Equal(t, 5892, p22.TotalFuses)
	assert.Equal(t, 132, p22.NumRows())
}

func TestBounds22V10(t *testing.T) {
	p := ChipGAL22V10.Profile()
	// Block starts match the row map used when programming the device;
	// each block leads with its OE row.
	starts := []int{1, 10, 21, 34, 49, 66, 83, 98, 111, 122}
	for i, want := range starts {
		assert.Equal(t, want, p.BlockStart(i), "OLMC %d", i)
		b := p.BoundsForOLMC(i)
		assert.Equal(t, want+1, b.StartRow, "OLMC %d", i)
		assert.Equal(t, p.RowsPerOLMC[i], b.MaxRows, "OLMC %d", i)
	}
	assert.Equal(t, 131, p.BlockStart(p.NumOLMCs))
}

func TestBounds20V8(t *testing.T) {
	p := ChipGAL20V8.Profile()
	for i := 0; i < p.NumOLMCs; i++ {
		assert.Equal(t, Bounds{StartRow: 8 * i, MaxRows: 8}, p.BoundsForOLMC(i))
	}
}

func TestColumnSymbolsAreABijection(t *testing.T) {
	for _, c := range []Chip{ChipGAL20V8, ChipGAL22V10} {
		p := c.Profile()
		t.Run(p.Name, func(t *testing.T) {
			seen := make(map[string]int)
			for col := 0; col < p.RowWidth; col++ {
				pin := p.ColumnPin(col)
				assert.Equal(t, p.Columns[col/2], pin.Pin)
				assert.Equal(t, col%2 == 1, pin.Neg)

				sym := pin.String()
				if prev, dup := seen[sym]; dup {
					t.Fatalf("columns %d and %d both map to %s", prev, col, sym)
				}
				seen[sym] = col

				back, err := p.PinToColumn(pin)
				require.NoError(t, err)
				assert.Equal(t, col, back)
			}
		})
	}
}

func TestPinToColumnRejectsNonInputs(t *testing.T) {
	p := ChipGAL20V8.Profile()
	// Pins 18 and 19 have no feedback in simple mode; 12 and 24 are power.
	for _, pin := range []int{12, 18, 19, 24} {
		_, err := p.PinToColumn(Pin{Pin: pin})
		assert.Error(t, err, "pin %d", pin)
	}
}

func TestFuseName(t *testing.T) {
	p20 := ChipGAL20V8.Profile()
	p22 := ChipGAL22V10.Profile()
	cases := []struct {
		p    *Profile
		idx  int
		want string
	}{
		{p20, 0, "Logic OLMC(pin22) row0/8 col0"},
		{p20, 2559, "Logic OLMC(pin15) row7/8 col39"},
		{p20, 2560, "XOR[0]"},
		{p20, 2567, "XOR[7]"},
		{p20, 2568, "SIG[0]"},
		{p20, 2632, "AC1[0]"},
		{p20, 2640, "PT[0]"},
		{p20, 2704, "SYN"},
		{p20, 2705, "AC0"},
		{p20, 2706, "unknown(2706)"},
		{p22, 3, "Logic AR col3"},
		{p22, 44, "Logic OLMC(pin23) row0/9 col0"},
		{p22, 5764, "Logic SP col0"},
		{p22, 5808, "S0[0]"},
		{p22, 5809, "S1[0]"},
		{p22, 5827, "S1[9]"},
		{p22, 5828, "SIG[0]"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.p.FuseName(tc.idx), "%s fuse %d", tc.p.Name, tc.idx)
	}
}

func TestValidateRejectsBrokenProfiles(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"no name", func(p *Profile) { p.Name = "" }},
		{"odd row width", func(p *Profile) { p.RowWidth = 41 }},
		{"short column table", func(p *Profile) { p.Columns = p.Columns[:10] }},
		{"missing OLMC pin", func(p *Profile) { p.OLMCPins = p.OLMCPins[:7] }},
		{"row list length", func(p *Profile) { p.RowsPerOLMC = []int{8, 8} }},
		{"array too large", func(p *Profile) { p.RowsPerOLMC = []int{9} }},
		{"polarity out of range", func(p *Profile) { p.Polarity.Bits = ExternalArray{Base: 2700} }},
		{"enable out of range", func(p *Profile) { p.Enable = &Enable{Bits: ExternalArray{Base: -1}} }},
		{"mode out of range", func(p *Profile) { p.Mode = &ModeBits{Syn: 2706, AC0: 2705} }},
		{"no polarity", func(p *Profile) { p.Polarity = Polarity{} }},
		{"pin beyond package", func(p *Profile) { p.OLMCPins = []int{22, 21, 20, 19, 18, 17, 16, 30} }},
		{"column pin repeated", func(p *Profile) {
			p.Columns = append([]int{1}, p.Columns[1:]...)
		}},
		{"OLMC pin repeated", func(p *Profile) { p.OLMCPins = []int{22, 21, 20, 19, 18, 17, 16, 16} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := *ChipGAL20V8.Profile()
			tc.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("got %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestModeFromBits(t *testing.T) {
	cases := []struct {
		syn, ac0 bool
		want     Mode
	}{
		{false, true, ModeRegistered},
		{true, true, ModeComplex},
		{true, false, ModeSimple},
		{false, false, ModeUnknown},
	}
	for _, tc := range cases {
		m := ModeFromBits(tc.syn, tc.ac0)
		assert.Equal(t, tc.want, m)
		syn, ac0 := m.Bits()
		assert.Equal(t, tc.syn, syn)
		assert.Equal(t, tc.ac0, ac0)
		assert.Equal(t, tc.want == ModeSimple, m.Implemented())
	}
}

func TestEquationString(t *testing.T) {
	eq := Equation{
		Output: Pin{Pin: 23, Neg: true},
		Terms: []Term{
			{{Pin: 1}, {Pin: 2, Neg: true}},
			{{Pin: 3}},
		},
	}
	assert.Equal(t, "/W = A * /B\n   + C", eq.String())
	assert.Equal(t, "W =", Equation{Output: Pin{Pin: 23}}.String())
	assert.Equal(t, "1", Term{}.String())
}

func TestTermContradicts(t *testing.T) {
	assert.True(t, Term{{Pin: 1}, {Pin: 2}, {Pin: 1, Neg: true}}.Contradicts())
	assert.False(t, Term{{Pin: 1}, {Pin: 2, Neg: true}}.Contradicts())
}
