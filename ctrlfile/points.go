package ctrlfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/splinekit/cubic"
	"github.com/ungerik/go3d/float64/vec3"
)

// ReadPoints reads planar control points of a curve, one `<x> <y>` pair per
// line. Blank lines and lines starting with '#' are ignored.
func ReadPoints(r io.Reader) ([]vec3.T, error) {
	sc := bufio.NewScanner(r)
	var pts []vec3.T
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%w at line %d: %q", ErrRecord, lineno, line)
		}
		x, err1 := strconv.ParseFloat(f[0], 64)
		y, err2 := strconv.ParseFloat(f[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w at line %d: %q", ErrRecord, lineno, line)
		}
		pts = append(pts, cubic.P2(x, y))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("read %d curve control points", len(pts))
	return pts, nil
}
