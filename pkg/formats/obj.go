// Wavefront OBJ parser for triangulated model geometry.
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

// ErrMalformedOBJ is returned for any syntax or reference error in an OBJ file.
var ErrMalformedOBJ = errors.New("malformed OBJ")

// OBJIndex references one face corner. Indices are zero-based; -1 means absent.
type OBJIndex struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJGroup is a consecutive run of triangles sharing a group name and material.
// Start and Count are in triangles.
type OBJGroup struct {
	Name     string
	Material string
	Start    int
	Count    int
}

// OBJObject is one named object ("o" statement).
type OBJObject struct {
	Name      string
	Triangles [][3]OBJIndex
	Groups    []OBJGroup
}

// OBJ is a parsed OBJ file. Vertex attribute pools are shared by all objects.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Objects   []OBJObject
	// MaterialLibs lists the files named by "mtllib" statements.
	MaterialLibs []string
}

// TriangleCount returns the number of triangles across all objects.
func (o *OBJ) TriangleCount() int {
	n := 0
	for i := range o.Objects {
		n += len(o.Objects[i].Triangles)
	}
	return n
}

// ObjectIndex returns the index of the first object with the given name,
// or -1.
func (o *OBJ) ObjectIndex(name string) int {
	for i := range o.Objects {
		if o.Objects[i].Name == name {
			return i
		}
	}
	return -1
}

type objParser struct {
	obj      *OBJ
	line     int
	group    string
	material string
}

// ParseOBJ parses OBJ text. Polygons are fan-triangulated.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading: %v", ErrMalformedOBJ, err)
	}

	// Drop objects and groups that ended up with no faces.
	objects := p.obj.Objects[:0]
	for _, o := range p.obj.Objects {
		groups := o.Groups[:0]
		for _, g := range o.Groups {
			if g.Count > 0 {
				groups = append(groups, g)
			}
		}
		o.Groups = groups
		if len(o.Triangles) > 0 {
			objects = append(objects, o)
		}
	}
	p.obj.Objects = objects
	return p.obj, nil
}

// ParseOBJFile reads and parses an OBJ file.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedOBJ, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	args := fields[1:]
	switch fields[0] {
	case "v":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := p.floats(args, 3)
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		// v is optional; a trailing w is ignored.
		v, err := p.floats(args, max(1, min(len(args), 2)))
		if err != nil {
			return err
		}
		uv := [2]float32{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.obj.TexCoords = append(p.obj.TexCoords, uv)
	case "o":
		p.obj.Objects = append(p.obj.Objects, OBJObject{Name: strings.Join(args, " ")})
		p.group = ""
	case "g":
		p.group = strings.Join(args, " ")
		p.startGroup()
	case "usemtl":
		p.material = strings.Join(args, " ")
		p.startGroup()
	case "mtllib":
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, args...)
	case "f":
		return p.face(args)
	default:
		// Smoothing groups, lines, free-form curves: nothing we render.
	}
	return nil
}

func (p *objParser) floats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, p.errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf("bad number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// current returns the object faces are added to, creating an unnamed one if needed.
func (p *objParser) current() *OBJObject {
	if len(p.obj.Objects) == 0 {
		p.obj.Objects = append(p.obj.Objects, OBJObject{})
	}
	return &p.obj.Objects[len(p.obj.Objects)-1]
}

func (p *objParser) startGroup() {
	o := p.current()
	if n := len(o.Groups); n > 0 {
		last := &o.Groups[n-1]
		if last.Count == 0 {
			last.Name, last.Material = p.group, p.material
			return
		}
		if last.Name == p.group && last.Material == p.material {
			return
		}
	}
	o.Groups = append(o.Groups, OBJGroup{
		Name:     p.group,
		Material: p.material,
		Start:    len(o.Triangles),
	})
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(args))
	}
	corners := make([]OBJIndex, len(args))
	for i, a := range args {
		c, err := p.corner(a)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	o := p.current()
	if len(o.Groups) == 0 {
		p.startGroup()
	}
	g := &o.Groups[len(o.Groups)-1]
	for i := 1; i+1 < len(corners); i++ {
		o.Triangles = append(o.Triangles, [3]OBJIndex{corners[0], corners[i], corners[i+1]})
		g.Count++
	}
	return nil
}

// corner parses "v", "v/t", "v//n" or "v/t/n".
func (p *objParser) corner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, p.errorf("bad face vertex %q", s)
	}
	idx := OBJIndex{Position: -1, TexCoord: -1, Normal: -1}

	var err error
	if idx.Position, err = p.resolve(parts[0], len(p.obj.Positions), "position"); err != nil {
		return OBJIndex{}, err
	}
	if idx.Position < 0 {
		return OBJIndex{}, p.errorf("face vertex %q has no position", s)
	}
	if len(parts) > 1 {
		if idx.TexCoord, err = p.resolve(parts[1], len(p.obj.TexCoords), "texcoord"); err != nil {
			return OBJIndex{}, err
		}
	}
	if len(parts) > 2 {
		if idx.Normal, err = p.resolve(parts[2], len(p.obj.Normals), "normal"); err != nil {
			return OBJIndex{}, err
		}
	}
	return idx, nil
}

// resolve converts a one-based or negative (relative) reference into a
// zero-based index. An empty reference yields -1.
func (p *objParser) resolve(s string, count int, kind string) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("bad %s index %q", kind, s)
	}
	var i int
	switch {
	case n > 0:
		i = n - 1
	case n < 0:
		i = count + n
	default:
		return 0, p.errorf("%s index 0 is invalid", kind)
	}
	if i < 0 || i >= count {
		return 0, p.errorf("%s index %d out of range (%d defined)", kind, n, count)
	}
	return i, nil
}
