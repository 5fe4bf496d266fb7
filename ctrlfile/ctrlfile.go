// Package ctrlfile reads control grids of surfaces from whitespace-delimited
// text records.
//
// A file holds a header `<label> <rows> <cols>` followed by rows·cols point
// records `<label> <x> <y> <z>`, row by row. A single title line may precede
// the header, and lines starting with '#' are ignored. Every coordinate is
// multiplied by a uniform scale factor on load.
//
//	cylinder
//	OBJ 4 4
//	P 10 0 0
//	P 0 10 0
//	...
package ctrlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/topology"
)

// tracer writes to trace with key 'cubic.ctrlfile'
func tracer() tracing.Trace {
	return tracing.Select("cubic.ctrlfile")
}

// DefaultScale is the uniform scale applied to loaded coordinates.
const DefaultScale = 0.22

var (
	// ErrHeader indicates a missing or malformed header.
	ErrHeader = errors.New("malformed control grid header")
	// ErrRecord indicates a malformed point record.
	ErrRecord = errors.New("malformed point record")
	// ErrTruncated indicates fewer point records than announced by the header.
	ErrTruncated = errors.New("too few point records")
)

// Header is the first record of a control grid file.
type Header struct {
	Label      string
	Rows, Cols int
}

func parseHeader(line string) (Header, bool) {
	f := strings.Fields(line)
	if len(f) != 3 {
		return Header{}, false
	}
	rows, err1 := strconv.Atoi(f[1])
	cols, err2 := strconv.Atoi(f[2])
	if err1 != nil || err2 != nil {
		return Header{}, false
	}
	return Header{Label: f[0], Rows: rows, Cols: cols}, true
}

// Read parses a control grid from r and scales every point by scale.
// Nothing is returned unless the whole grid could be read.
func Read(r io.Reader, scale float64) (*topology.Grid, Header, error) {
	sc := bufio.NewScanner(r)
	var h Header
	var words []string
	seenHeader, lines := false, 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seenHeader {
			lines++
			var ok bool
			if h, ok = parseHeader(line); ok {
				seenHeader = true
			} else if lines > 1 {
				return nil, Header{}, fmt.Errorf("%w: %q", ErrHeader, line)
			}
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, Header{}, err
	}
	if !seenHeader {
		return nil, Header{}, ErrHeader
	}
	g, err := topology.NewGrid(h.Rows, h.Cols)
	if err != nil {
		return nil, Header{}, err
	}
	n := h.Rows * h.Cols
	if len(words) < 4*n {
		return nil, Header{}, fmt.Errorf("%w: want %d, have %d", ErrTruncated, n, len(words)/4)
	}
	for k := 0; k < n; k++ {
		rec := words[4*k : 4*k+4]
		var xyz [3]float64
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(rec[c+1], 64)
			if err != nil {
				return nil, Header{}, fmt.Errorf("%w %d: %q", ErrRecord, k, strings.Join(rec, " "))
			}
			xyz[c] = v * scale
		}
		if err := g.Set(k/h.Cols, k%h.Cols, cubic.P(xyz[0], xyz[1], xyz[2])); err != nil {
			return nil, Header{}, err
		}
	}
	if extra := len(words) - 4*n; extra > 0 {
		tracer().Debugf("ignoring %d trailing words after %d records", extra, n)
	}
	tracer().Infof("read control grid %s %d×%d", h.Label, h.Rows, h.Cols)
	return g, h, nil
}

// Load reads a control grid file.
func Load(path string, scale float64) (*topology.Grid, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("ctrlfile: open %s: %w", path, err)
	}
	defer f.Close()
	g, h, err := Read(f, scale)
	if err != nil {
		return nil, Header{}, fmt.Errorf("ctrlfile: %s: %w", path, err)
	}
	return g, h, nil
}
