package gal

import "fmt"

// BitScheme locates the configuration bit that belongs to an OLMC.
type BitScheme interface {
	Address(p *Profile, olmc int) int
}

// ExternalArray keeps one bit per OLMC in a flat array outside the AND
// array. The bit for OLMC i lives at Base + i*Stride; a zero Stride means 1.
type ExternalArray struct {
	Base   int
	Stride int
}

func (e ExternalArray) Address(_ *Profile, olmc int) int {
	stride := e.Stride
	if stride == 0 {
		stride = 1
	}
	return e.Base + olmc*stride
}

func (e ExternalArray) String() string {
	return fmt.Sprintf("external(base=%d, stride=%d)", e.Base, e.Stride)
}

// EmbeddedBit keeps the bit for an OLMC inside its own row block, Offset
// fuses past the first fuse of the block.
type EmbeddedBit struct {
	Offset int
}

func (e EmbeddedBit) Address(p *Profile, olmc int) int {
	return p.BlockStart(olmc)*p.RowWidth + e.Offset
}

func (e EmbeddedBit) String() string {
	return fmt.Sprintf("embedded(offset=%d)", e.Offset)
}

// Polarity decides whether an output symbol is printed inverted. The
// output is inverted when its bit equals InvertWhen.
type Polarity struct {
	Bits       BitScheme
	InvertWhen bool
}

// Inverted reads the polarity bit of olmc.
func (pol Polarity) Inverted(p *Profile, f Fuses, olmc int) bool {
	return f[pol.Bits.Address(p, olmc)] == pol.InvertWhen
}

// Enable marks OLMCs configured as dedicated inputs. An OLMC is an input
// when its bit equals InputWhen.
type Enable struct {
	Bits      BitScheme
	InputWhen bool
}

// InputOnly reads the enable bit of olmc.
func (en Enable) InputOnly(p *Profile, f Fuses, olmc int) bool {
	return f[en.Bits.Address(p, olmc)] == en.InputWhen
}

// ModeBits holds the fuse addresses of the SYN and AC0 bits.
type ModeBits struct {
	Syn int
	AC0 int
}
