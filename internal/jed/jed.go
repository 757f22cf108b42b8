// Package jed reads and writes JEDEC (JESD3) fuse map files.
package jed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pborges/galdis/internal/gal"
)

type Config struct {
	SecurityBit bool
	Header      []string
}

// MakeJEDEC generates a JEDEC file for a fuse array laid out as p.
// Logic rows left at the default fuse state are omitted; configuration
// fuses are written one section per line.
func MakeJEDEC(cfg Config, p *gal.Profile, f gal.Fuses) string {
	var buf strings.Builder
	buf.WriteByte(0x02)
	buf.WriteByte('\n')
	for _, line := range cfg.Header {
		buf.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("*F0\n")
	if cfg.SecurityBit {
		buf.WriteString("*G1\n")
	} else {
		buf.WriteString("*G0\n")
	}
	fmt.Fprintf(&buf, "*QF%d\n", len(f))

	fb := newFuseBuilder(&buf)
	logic := p.NumRows() * p.RowWidth
	for row := 0; row < logic; row += p.RowWidth {
		chunk := f[row : row+p.RowWidth]
		if anyTrue(chunk) {
			fb.add(chunk)
		} else {
			fb.skip(chunk)
		}
	}

	breaks := map[int]bool{}
	for _, s := range p.Sections {
		if s.Stride <= 1 {
			breaks[s.Start] = true
		}
	}
	var line []bool
	for i := logic; i < len(f); i++ {
		if len(line) > 0 && (breaks[i] || len(line) == 64) {
			fb.add(line)
			line = line[:0]
		}
		line = append(line, f[i])
	}
	if len(line) > 0 {
		fb.add(line)
	}

	fb.checksum()
	buf.WriteString("*\n")
	buf.WriteByte(0x03)
	fmt.Fprintf(&buf, "%04x\n", fileChecksum([]byte(buf.String())))
	return buf.String()
}

// HeaderLines returns the design header the writer records for a device.
func HeaderLines(p *gal.Profile, extra map[string]string) []string {
	lines := []string{fmt.Sprintf("%-15s %s", "Device", p.Name)}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(extra[k]); v != "" {
			lines = append(lines, fmt.Sprintf("%-15s %s", k, v))
		}
	}
	return lines
}

func anyTrue(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

// fuseBuilder writes *L lines. The fuse index and checksum advance over
// skipped runs as well as written ones.
type fuseBuilder struct {
	buf      *strings.Builder
	cs       checkSummer
	idx      int
	openLine bool
}

func newFuseBuilder(buf *strings.Builder) *fuseBuilder {
	return &fuseBuilder{buf: buf}
}

func (f *fuseBuilder) add(bits []bool) {
	f.startLine()
	for _, b := range bits {
		f.addBit(b)
	}
	f.endLine()
}

func (f *fuseBuilder) skip(bits []bool) {
	for range bits {
		f.cs.add(false)
		f.idx++
	}
}

func (f *fuseBuilder) addBit(b bool) {
	f.startLine()
	if b {
		f.buf.WriteByte('1')
	} else {
		f.buf.WriteByte('0')
	}
	f.cs.add(b)
	f.idx++
}

func (f *fuseBuilder) startLine() {
	if f.openLine {
		return
	}
	fmt.Fprintf(f.buf, "*L%05d ", f.idx)
	f.openLine = true
}

func (f *fuseBuilder) endLine() {
	if f.openLine {
		f.buf.WriteByte('\n')
		f.openLine = false
	}
}

func (f *fuseBuilder) checksum() {
	f.endLine()
	fmt.Fprintf(f.buf, "*C%04x\n", f.cs.sum())
}

// checkSummer accumulates the *C fuse checksum. Fuse n is bit n%8 of
// byte n/8; the bytes are added modulo 2^16. A trailing partial byte
// counts with its missing bits clear.
type checkSummer struct {
	n     int
	acc   uint8
	total uint16
}

func (c *checkSummer) add(fuse bool) {
	if fuse {
		c.acc |= 1 << (c.n % 8)
	}
	c.n++
	if c.n%8 == 0 {
		c.total += uint16(c.acc)
		c.acc = 0
	}
}

func (c *checkSummer) sum() uint16 {
	return c.total + uint16(c.acc)
}

// FuseChecksum computes the *C checksum of a fuse array. Parse verifies
// files against it and MakeJEDEC writes it.
func FuseChecksum(bits []bool) uint16 {
	var cs checkSummer
	for _, b := range bits {
		cs.add(b)
	}
	return cs.sum()
}

// fileChecksum is the transmission checksum written after ETX: every
// byte from STX through ETX inclusive, summed modulo 2^16.
func fileChecksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
