package gal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyYAML = `
devices:
  - name: TINY4
    pins: 8
    fuses: 48
    row_width: 8
    rows_per_olmc: [2]
    columns: [1, 2, 3, 4]
    olmc_pins: [8, 7]
    control:
      olmc: [CFG]
    polarity: {kind: embedded, offset: 0, invert_when: 1}
    sections:
      - {name: CFG, start: 0, len: 2, stride: 24}
`

func TestLoadProfiles(t *testing.T) {
	r := DefaultRegistry()
	names, err := LoadProfiles(r, strings.NewReader(tinyYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"TINY4"}, names)

	p, err := r.Lookup("tiny4")
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumOLMCs)
	assert.Equal(t, EmbeddedBit{Offset: 0}, p.Polarity.Bits)
	assert.True(t, p.Polarity.InvertWhen)
	assert.Nil(t, p.Enable)
	assert.Nil(t, p.Mode)
	assert.Equal(t, []string{"CFG"}, p.OLMCControl)

	// Built-ins stay registered.
	_, err = r.Lookup("GAL20V8")
	assert.NoError(t, err)
}

func TestLoadProfilesErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "devices:\n  - name: X\n    colour: red\n",
		"bad scheme":      strings.Replace(tinyYAML, "kind: embedded", "kind: sideways", 1),
		"no polarity":     strings.Replace(tinyYAML, "    polarity: {kind: embedded, offset: 0, invert_when: 1}\n", "", 1),
		"invalid layout":  strings.Replace(tinyYAML, "fuses: 48", "fuses: 40", 1),
		"not yaml":        "devices: [",
		"repeated column": strings.Replace(tinyYAML, "columns: [1, 2, 3, 4]", "columns: [1, 1, 3, 4]", 1),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProfiles(NewRegistry(), strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
