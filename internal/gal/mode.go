package gal

// Mode represents the operating mode selected by the SYN and AC0 bits.
type Mode int

const (
	ModeUnknown    Mode = iota // SYN=0, AC0=0
	ModeSimple                 // SYN=1, AC0=0
	ModeComplex                // SYN=1, AC0=1
	ModeRegistered             // SYN=0, AC0=1
)

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "Simple"
	case ModeComplex:
		return "Complex"
	case ModeRegistered:
		return "Registered"
	default:
		return "Unknown"
	}
}

// ModeFromBits resolves the mode selected by a SYN/AC0 pair.
func ModeFromBits(syn, ac0 bool) Mode {
	switch {
	case !syn && ac0:
		return ModeRegistered
	case syn && ac0:
		return ModeComplex
	case syn && !ac0:
		return ModeSimple
	default:
		return ModeUnknown
	}
}

// Bits returns the SYN/AC0 pair that selects m.
func (m Mode) Bits() (syn, ac0 bool) {
	switch m {
	case ModeSimple:
		return true, false
	case ModeComplex:
		return true, true
	case ModeRegistered:
		return false, true
	default:
		return false, false
	}
}

// Implemented reports whether the decoder can interpret a fuse array in
// this mode.
func (m Mode) Implemented() bool {
	return m == ModeSimple
}
