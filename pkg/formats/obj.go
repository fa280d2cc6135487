// Package formats provides parsers for mesh file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyOBJ           = errors.New("OBJ contains no faces")
	ErrMalformedOBJFace   = errors.New("malformed OBJ face element")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// OBJFaceVertex references one corner of a triangle. Indices are
// zero-based into the OBJ's Positions/TexCoords/Normals slices;
// TexCoord and Normal are -1 when the face element omits them.
type OBJFaceVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJ holds the contents of a Wavefront OBJ file. Faces are already
// triangulated: polygons with more than three corners are split into
// a triangle fan around the first corner.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     [][3]OBJFaceVertex
}

// ParseOBJ parses Wavefront OBJ data. Only the geometry statements
// (v, vt, vn, f) are interpreted; material and grouping statements
// are ignored.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, v)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{u, v})

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: need at least 3 corners", lineNo, ErrMalformedOBJFace)
			}
			corners := make([]OBJFaceVertex, 0, len(fields)-1)
			for _, elem := range fields[1:] {
				fv, err := obj.parseFaceVertex(elem)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, fv)
			}
			// Fan triangulation around the first corner
			for i := 1; i+1 < len(corners); i++ {
				obj.Faces = append(obj.Faces, [3]OBJFaceVertex{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(obj.Faces) == 0 {
		return nil, ErrEmptyOBJ
	}
	return obj, nil
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

// parseFaceVertex parses a single face element: "i", "i/j", "i//k" or
// "i/j/k". OBJ indices are one-based; negative indices count back from
// the end of the slice seen so far.
func (o *OBJ) parseFaceVertex(elem string) (OBJFaceVertex, error) {
	fv := OBJFaceVertex{Position: -1, TexCoord: -1, Normal: -1}

	parts := strings.Split(elem, "/")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return fv, fmt.Errorf("%w: %q", ErrMalformedOBJFace, elem)
	}

	var err error
	fv.Position, err = resolveIndex(parts[0], len(o.Positions))
	if err != nil {
		return fv, fmt.Errorf("%w: %q", err, elem)
	}

	if len(parts) > 1 && parts[1] != "" {
		fv.TexCoord, err = resolveIndex(parts[1], len(o.TexCoords))
		if err != nil {
			return fv, fmt.Errorf("%w: %q", err, elem)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		fv.Normal, err = resolveIndex(parts[2], len(o.Normals))
		if err != nil {
			return fv, fmt.Errorf("%w: %q", err, elem)
		}
	}
	return fv, nil
}

// resolveIndex converts a one-based (or negative relative) OBJ index
// into a zero-based slice index.
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return -1, ErrMalformedOBJFace
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx = count + idx
	default:
		return -1, ErrOBJIndexOutOfRange
	}
	if idx < 0 || idx >= count {
		return -1, ErrOBJIndexOutOfRange
	}
	return idx, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}
