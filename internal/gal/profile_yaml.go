package gal

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlProfiles is the document layout read by LoadProfiles.
//
//	devices:
//	  - name: GAL16V8
//	    pins: 20
//	    fuses: 2194
//	    row_width: 32
//	    rows_per_olmc: [8]
//	    columns: [2, 1, 3, 19, ...]
//	    olmc_pins: [19, 18, 17, 16, 15, 14, 13, 12]
//	    polarity: {kind: external, base: 2048, invert_when: 0}
//	    enable: {kind: external, base: 2120, input_when: 1}
//	    mode: {syn: 2192, ac0: 2193}
type yamlProfiles struct {
	Devices []yamlProfile `yaml:"devices"`
}

type yamlProfile struct {
	Name        string        `yaml:"name"`
	Pins        int           `yaml:"pins"`
	Fuses       int           `yaml:"fuses"`
	RowWidth    int           `yaml:"row_width"`
	RowsPerOLMC []int         `yaml:"rows_per_olmc"`
	Columns     []int         `yaml:"columns"`
	OLMCPins    []int         `yaml:"olmc_pins"`
	Polarity    *yamlScheme   `yaml:"polarity"`
	Enable      *yamlScheme   `yaml:"enable"`
	Mode        *yamlModeBits `yaml:"mode"`
	Control     struct {
		Preamble  []string `yaml:"preamble"`
		OLMC      []string `yaml:"olmc"`
		Postamble []string `yaml:"postamble"`
	} `yaml:"control"`
	Sections []yamlSection `yaml:"sections"`
}

type yamlScheme struct {
	Kind       string `yaml:"kind"`
	Base       int    `yaml:"base"`
	Stride     int    `yaml:"stride"`
	Offset     int    `yaml:"offset"`
	InvertWhen int    `yaml:"invert_when"`
	InputWhen  int    `yaml:"input_when"`
}

type yamlModeBits struct {
	Syn int `yaml:"syn"`
	AC0 int `yaml:"ac0"`
}

type yamlSection struct {
	Name   string `yaml:"name"`
	Start  int    `yaml:"start"`
	Len    int    `yaml:"len"`
	Stride int    `yaml:"stride"`
}

func (s *yamlScheme) bits() (BitScheme, error) {
	switch s.Kind {
	case "external", "":
		return ExternalArray{Base: s.Base, Stride: s.Stride}, nil
	case "embedded":
		return EmbeddedBit{Offset: s.Offset}, nil
	default:
		return nil, fmt.Errorf("unknown bit scheme %q", s.Kind)
	}
}

// LoadProfiles reads device profiles from a YAML document and registers
// them with r. It returns the names that were registered.
func LoadProfiles(r *Registry, in io.Reader) ([]string, error) {
	var doc yamlProfiles
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	var names []string
	for _, y := range doc.Devices {
		p, err := y.profile()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, y.Name, err)
		}
		if err := r.Register(p); err != nil {
			return nil, err
		}
		names = append(names, p.Name)
	}
	return names, nil
}

func (y yamlProfile) profile() (*Profile, error) {
	p := &Profile{
		Name:        y.Name,
		NumPins:     y.Pins,
		TotalFuses:  y.Fuses,
		NumOLMCs:    len(y.OLMCPins),
		RowWidth:    y.RowWidth,
		RowsPerOLMC: y.RowsPerOLMC,
		Columns:     y.Columns,
		OLMCPins:    y.OLMCPins,
		Preamble:    y.Control.Preamble,
		OLMCControl: y.Control.OLMC,
		Postamble:   y.Control.Postamble,
	}
	if y.Polarity == nil {
		return nil, fmt.Errorf("missing polarity")
	}
	bits, err := y.Polarity.bits()
	if err != nil {
		return nil, err
	}
	p.Polarity = Polarity{Bits: bits, InvertWhen: y.Polarity.InvertWhen != 0}
	if y.Enable != nil {
		bits, err := y.Enable.bits()
		if err != nil {
			return nil, err
		}
		p.Enable = &Enable{Bits: bits, InputWhen: y.Enable.InputWhen != 0}
	}
	if y.Mode != nil {
		p.Mode = &ModeBits{Syn: y.Mode.Syn, AC0: y.Mode.AC0}
	}
	for _, s := range y.Sections {
		p.Sections = append(p.Sections, Section{Name: s.Name, Start: s.Start, Len: s.Len, Stride: s.Stride})
	}
	return p, nil
}
