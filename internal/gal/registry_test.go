package gal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"GAL20V8", "GAL22V10"}, r.Names())

	p, err := r.Lookup("gal22v10")
	require.NoError(t, err)
	assert.Same(t, ChipGAL22V10.Profile(), p)

	_, err = r.Lookup("GAL16V8")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestLookupResolvesBuiltinsInAnyRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	p, err := r.Lookup("g20v8")
	require.NoError(t, err)
	assert.Same(t, ChipGAL20V8.Profile(), p)

	_, err = r.Lookup("tiny4")
	assert.ErrorIs(t, err, ErrUnknownDevice)

	// A registered profile overrides the built-in of the same name.
	override := *ChipGAL20V8.Profile()
	require.NoError(t, r.Register(&override))
	p, err = r.Lookup("GAL20V8")
	require.NoError(t, err)
	assert.Same(t, &override, p)
}

func TestRegistryRegister(t *testing.T) {
	r := DefaultRegistry()
	p := tinyProfile()
	require.NoError(t, r.Register(p))

	got, err := r.Lookup("tiny4")
	require.NoError(t, err)
	assert.Same(t, p, got)

	bad := tinyProfile()
	bad.Columns = bad.Columns[:1]
	assert.ErrorIs(t, r.Register(bad), ErrInvalidProfile)
}

// tinyProfile is a small device keeping its polarity bit inside each
// OLMC block, in a leading configuration row.
func tinyProfile() *Profile {
	return &Profile{
		Name:        "TINY4",
		NumPins:     8,
		TotalFuses:  48,
		NumOLMCs:    2,
		RowWidth:    8,
		RowsPerOLMC: []int{2},
		Columns:     []int{1, 2, 3, 4},
		OLMCPins:    []int{8, 7},
		OLMCControl: []string{"CFG"},
		Polarity:    Polarity{Bits: EmbeddedBit{Offset: 0}, InvertWhen: true},
	}
}

func TestEmbeddedBitAddress(t *testing.T) {
	p := tinyProfile()
	assert.Equal(t, 0, p.Polarity.Bits.Address(p, 0))
	assert.Equal(t, 24, p.Polarity.Bits.Address(p, 1))
	assert.Equal(t, Bounds{StartRow: 4, MaxRows: 2}, p.BoundsForOLMC(1))
}
