package jed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pborges/galdis/internal/gal"
)

var (
	// ErrFormat is returned for a malformed JEDEC file.
	ErrFormat = errors.New("malformed JEDEC file")
	// ErrChecksum is returned when a fuse or transmission checksum does
	// not match the file contents.
	ErrChecksum = errors.New("JEDEC checksum mismatch")
)

// MaxFuses bounds the fuse count a file may declare or address.
const MaxFuses = 1 << 20

// File is the content of a JEDEC file relevant to disassembly.
type File struct {
	// Device is the device name recorded in the header or in an N note,
	// empty when the file names none.
	Device   string
	Header   []string
	QF       int
	Security bool
	Fuses    gal.Fuses
	// Csum is the *C fuse checksum, when the file has one.
	Csum    uint16
	HasCsum bool
}

// Parse reads a JEDEC file. Fuses not set by an L field take the F default
// (0 when absent). Fuse and transmission checksums are verified when
// present; a transmission checksum of 0000 is not checked.
func Parse(data []byte) (*File, error) {
	s := string(data)
	start := strings.IndexByte(s, 0x02)
	end := strings.IndexByte(s, 0x03)
	if end >= 0 && start > end {
		return nil, fmt.Errorf("%w: ETX before STX", ErrFormat)
	}
	if start >= 0 && end >= 0 {
		if err := verifyTransmission(data[start:end+1], s[end+1:]); err != nil {
			return nil, err
		}
	}
	body := s
	if end >= 0 {
		body = body[:end]
	}
	if start >= 0 {
		body = body[start+1:]
	}

	fields := strings.Split(body, "*")
	j := &File{}
	for _, line := range strings.Split(fields[0], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		j.Header = append(j.Header, line)
		if name, ok := deviceFromHeader(line); ok && j.Device == "" {
			j.Device = name
		}
	}

	var (
		defaultFuse bool
		runs        []run
	)
	for _, field := range fields[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var err error
		switch field[0] {
		case 'Q':
			if strings.HasPrefix(field, "QF") {
				j.QF, err = fuseCount(field[2:])
			}
		case 'F':
			var v int
			v, err = atoi(field[1:])
			defaultFuse = v == 1
		case 'G':
			var v int
			v, err = atoi(field[1:])
			j.Security = v == 1
		case 'C':
			var v uint64
			v, err = strconv.ParseUint(strings.TrimSpace(field[1:]), 16, 16)
			j.Csum, j.HasCsum = uint16(v), true
		case 'L':
			var r run
			r, err = parseRun(field[1:])
			runs = append(runs, r)
		case 'N':
			if name, ok := deviceFromNote(field[1:]); ok && j.Device == "" {
				j.Device = name
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrFormat, abbreviate(field), err)
		}
	}

	if j.QF == 0 {
		for _, r := range runs {
			if n := r.offset + len(r.bits); n > j.QF {
				j.QF = n
			}
		}
		if j.QF > MaxFuses {
			return nil, fmt.Errorf("%w: fuse data runs past %d fuses", ErrFormat, MaxFuses)
		}
	}
	j.Fuses = make(gal.Fuses, j.QF)
	for i := range j.Fuses {
		j.Fuses[i] = defaultFuse
	}
	for _, r := range runs {
		if r.offset+len(r.bits) > j.QF {
			return nil, fmt.Errorf("%w: L%05d runs past %d fuses", ErrFormat, r.offset, j.QF)
		}
		copy(j.Fuses[r.offset:], r.bits)
	}
	if j.HasCsum {
		if got := FuseChecksum(j.Fuses); got != j.Csum {
			return nil, fmt.Errorf("%w: fuse checksum %04X, file says %04X", ErrChecksum, got, j.Csum)
		}
	}
	return j, nil
}

type run struct {
	offset int
	bits   []bool
}

func parseRun(s string) (run, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, isSpace)
	if i < 0 {
		return run{}, errors.New("missing fuse data")
	}
	off, err := fuseCount(s[:i])
	if err != nil {
		return run{}, err
	}
	r := run{offset: off}
	for _, ch := range s[i:] {
		switch ch {
		case '0':
			r.bits = append(r.bits, false)
		case '1':
			r.bits = append(r.bits, true)
		case ' ', '\t', '\r', '\n':
		default:
			return run{}, fmt.Errorf("invalid bit %q", ch)
		}
	}
	return r, nil
}

func verifyTransmission(framed []byte, trailer string) error {
	trailer = strings.TrimSpace(trailer)
	if len(trailer) < 4 {
		return nil
	}
	want, err := strconv.ParseUint(trailer[:4], 16, 16)
	if err != nil {
		return fmt.Errorf("%w: transmission checksum %q: %v", ErrFormat, trailer[:4], err)
	}
	if want == 0 {
		return nil
	}
	if got := fileChecksum(framed); uint64(got) != want {
		return fmt.Errorf("%w: transmission checksum %04X, file says %04X", ErrChecksum, got, want)
	}
	return nil
}

// deviceFromHeader recognizes "Device g22v10" style header lines.
func deviceFromHeader(line string) (string, bool) {
	parts := strings.Fields(line)
	if len(parts) >= 2 && strings.EqualFold(parts[0], "device") {
		return parts[1], true
	}
	return "", false
}

// deviceFromNote recognizes "N DEVICE GAL20V8" note fields.
func deviceFromNote(note string) (string, bool) {
	parts := strings.Fields(note)
	if len(parts) >= 2 && strings.EqualFold(parts[0], "device") {
		return parts[1], true
	}
	return "", false
}

// fuseCount parses an unsigned decimal fuse number below MaxFuses.
func fuseCount(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if n >= MaxFuses {
		return 0, fmt.Errorf("%d exceeds %d fuses", n, MaxFuses)
	}
	return int(n), nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func abbreviate(s string) string {
	if len(s) > 16 {
		return s[:16] + "..."
	}
	return s
}
