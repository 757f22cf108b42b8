package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pborges/galdis/internal/diag"
	"github.com/pborges/galdis/internal/gal"
	"gopkg.in/yaml.v3"
)

// Label names a control row in a listing: "AR" for device-wide rows,
// "OE(W)" for a row belonging to the OLMC on pin 23.
func (c Control) Label() string {
	if c.OLMC == diag.NoOLMC {
		return c.Name
	}
	return fmt.Sprintf("%s(%c)", c.Name, gal.Letter(c.Pin))
}

func (c Control) String() string {
	if c.Unused {
		return c.Label() + " ="
	}
	return c.Label() + " = " + c.Term.String()
}

// WriteText writes one equation per enabled OLMC. With controls set,
// decoded control rows are written as '#' comment lines: device-wide rows
// first, OLMC rows directly above their OLMC's equation.
func WriteText(w io.Writer, l *Listing, controls bool) error {
	bw := bufio.NewWriter(w)
	byOLMC := make(map[int][]Control)
	if controls {
		for _, c := range l.Controls {
			if c.OLMC == diag.NoOLMC {
				fmt.Fprintf(bw, "# %s\n", c)
				continue
			}
			byOLMC[c.OLMC] = append(byOLMC[c.OLMC], c)
		}
	}
	for _, eq := range l.Equations {
		for _, c := range byOLMC[eq.OLMC] {
			fmt.Fprintf(bw, "# %s\n", c)
		}
		fmt.Fprintln(bw, eq)
	}
	return bw.Flush()
}

type yamlListing struct {
	Device    string         `yaml:"device"`
	Mode      string         `yaml:"mode"`
	Equations []yamlEquation `yaml:"equations"`
	Controls  []yamlControl  `yaml:"controls,omitempty"`
}

type yamlEquation struct {
	OLMC   int        `yaml:"olmc"`
	Pin    int        `yaml:"pin"`
	Output string     `yaml:"output"`
	Terms  [][]string `yaml:"terms"`
}

type yamlControl struct {
	Control `yaml:",inline"`
	Label   string   `yaml:"label"`
	Term    []string `yaml:"term,omitempty"`
}

func termStrings(t gal.Term) []string {
	out := make([]string, len(t))
	for i, p := range t {
		out[i] = p.String()
	}
	return out
}

// WriteYAML writes the listing as a YAML document.
func WriteYAML(w io.Writer, l *Listing, controls bool) error {
	y := yamlListing{
		Device:    l.Device,
		Mode:      l.Mode.String(),
		Equations: make([]yamlEquation, 0, len(l.Equations)),
	}
	for _, eq := range l.Equations {
		ye := yamlEquation{
			OLMC:   eq.OLMC,
			Pin:    eq.Output.Pin,
			Output: eq.Output.String(),
			Terms:  make([][]string, 0, len(eq.Terms)),
		}
		for _, t := range eq.Terms {
			ye.Terms = append(ye.Terms, termStrings(t))
		}
		y.Equations = append(y.Equations, ye)
	}
	if controls {
		for _, c := range l.Controls {
			y.Controls = append(y.Controls, yamlControl{Control: c, Label: c.Label(), Term: termStrings(c.Term)})
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}
