// Package input reads triangle sets in the plain text format: a triangle count N followed by 9N
// coordinates, three vertices of x y z per triangle, all separated by whitespace.
package input

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/trispace/spatialmath"
)

// Triangles are allocated up front for at most this many entries so a bogus count cannot exhaust
// memory before the coordinates run out.
const maxPrealloc = 1 << 16

var axisNames = [3]string{"x", "y", "z"}

// ReadFile reads triangles from the named file.
func ReadFile(fn string) ([]*spatialmath.Triangle, error) {
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	triangles, err := ReadTriangles(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", fn)
	}
	return triangles, nil
}

// ReadTriangles parses a triangle count followed by that many triangles. Degenerate triangles are
// accepted; NaN and infinite coordinates are not. Tokens after the last triangle are ignored.
func ReadTriangles(r io.Reader) ([]*spatialmath.Triangle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func() (string, bool, error) {
		if scanner.Scan() {
			return scanner.Text(), true, nil
		}
		return "", false, scanner.Err()
	}

	token, ok, err := next()
	if err != nil {
		return nil, errors.Wrap(err, "reading triangle count")
	}
	if !ok {
		return nil, errors.New("missing triangle count")
	}
	count, err := strconv.Atoi(token)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid triangle count %q", token)
	}
	if count < 0 {
		return nil, errors.Errorf("triangle count cannot be negative, got %d", count)
	}

	triangles := make([]*spatialmath.Triangle, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		var pts [3]r3.Vector
		for v := range pts {
			var coords [3]float64
			for c := range coords {
				token, ok, err := next()
				if err != nil {
					return nil, errors.Wrapf(err, "reading triangle %d", i+1)
				}
				if !ok {
					return nil, errors.Errorf("unexpected end of input in triangle %d of %d", i+1, count)
				}
				value, err := strconv.ParseFloat(token, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid %s coordinate of vertex %d in triangle %d", axisNames[c], v+1, i+1)
				}
				if math.IsNaN(value) || math.IsInf(value, 0) {
					return nil, errors.Errorf("non-finite %s coordinate %q of vertex %d in triangle %d", axisNames[c], token, v+1, i+1)
				}
				coords[c] = value
			}
			pts[v] = r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}
		}
		triangles = append(triangles, spatialmath.NewTriangle(pts[0], pts[1], pts[2]))
	}
	return triangles, nil
}
