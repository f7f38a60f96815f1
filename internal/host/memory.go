package host

import (
	"fmt"
	"regexp"
	"sort"
)

// Box is an axis-aligned extent the in-memory host uses to stand in for real
// solid geometry. A box that is flat in exactly one axis acts as a planar
// sketch.
type Box struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// memObject pairs the public object record with the geometry backing it.
// Objects created via Create carry no box and cannot take part in booleans.
type memObject struct {
	obj Object
	box *Box
}

// MemDocument is an in-memory Document. It models solids as axis-aligned
// boxes, which is enough to exercise every macro code path without a CAD
// kernel behind it.
type MemDocument struct {
	objects    map[string]*memObject
	sheets     map[string]*memSheet
	recomputes int
}

var _ Document = (*MemDocument)(nil)

// NewMemDocument returns an empty in-memory document.
func NewMemDocument() *MemDocument {
	return &MemDocument{
		objects: make(map[string]*memObject),
		sheets:  make(map[string]*memSheet),
	}
}

func (d *MemDocument) Create(name, label string, shape Shape) (*Object, error) {
	return d.add(name, label, shape, nil)
}

// AddBox adds a solid (or planar, when flat in one axis) object backed by
// box geometry, so it can take part in Intersect and Extrude.
func (d *MemDocument) AddBox(name, label string, b Box) (*Object, error) {
	if b.MaxX < b.MinX || b.MaxY < b.MinY || b.MaxZ < b.MinZ {
		return nil, fmt.Errorf("box for %q has negative extent", name)
	}
	return d.add(name, label, shapeForBox(b), &b)
}

func (d *MemDocument) add(name, label string, shape Shape, b *Box) (*Object, error) {
	if name == "" {
		return nil, fmt.Errorf("object name must not be empty")
	}
	if _, ok := d.objects[name]; ok {
		return nil, &DuplicateError{Name: name}
	}
	mo := &memObject{obj: Object{Name: name, Label: label, Shape: shape}, box: b}
	d.objects[name] = mo
	return &mo.obj, nil
}

func (d *MemDocument) Remove(name string) error {
	if _, ok := d.objects[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(d.objects, name)
	return nil
}

func (d *MemDocument) Object(name string) (*Object, bool) {
	mo, ok := d.objects[name]
	if !ok {
		return nil, false
	}
	return &mo.obj, true
}

func (d *MemDocument) ObjectsByLabel(label string) []*Object {
	var out []*Object
	for _, name := range d.Names() {
		mo := d.objects[name]
		if mo.obj.Label == label {
			out = append(out, &mo.obj)
		}
	}
	return out
}

func (d *MemDocument) Names() []string {
	names := make([]string, 0, len(d.objects))
	for name := range d.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *MemDocument) Intersect(name, a, b string) (*Object, error) {
	boxA, err := d.geometry(a)
	if err != nil {
		return nil, err
	}
	boxB, err := d.geometry(b)
	if err != nil {
		return nil, err
	}

	overlap, ok := intersectBoxes(*boxA, *boxB)
	if !ok {
		// Disjoint inputs still materialize a (vertex-free) object,
		// matching how a CAD kernel represents a failed boolean.
		return d.add(name, name, Shape{}, nil)
	}
	return d.add(name, name, shapeForBox(overlap), &overlap)
}

func (d *MemDocument) Extrude(name, sketch string, length float64) (*Object, error) {
	if length == 0 {
		return nil, fmt.Errorf("extrude %q: length must be nonzero", sketch)
	}
	b, err := d.geometry(sketch)
	if err != nil {
		return nil, err
	}
	if b.MinZ != b.MaxZ {
		return nil, fmt.Errorf("extrude %q: sketch must be planar in z", sketch)
	}

	solid := *b
	if length > 0 {
		solid.MaxZ = solid.MinZ + length
	} else {
		solid.MinZ = solid.MaxZ + length
	}
	return d.add(name, name, shapeForBox(solid), &solid)
}

func (d *MemDocument) Spreadsheet(name string) Spreadsheet {
	if sheet, ok := d.sheets[name]; ok {
		return sheet
	}
	sheet := &memSheet{name: name, cells: make(map[string]any)}
	d.sheets[name] = sheet
	return sheet
}

func (d *MemDocument) Recompute() error {
	d.recomputes++
	return nil
}

// Recomputes returns how many times Recompute has been called.
func (d *MemDocument) Recomputes() int {
	return d.recomputes
}

func (d *MemDocument) geometry(name string) (*Box, error) {
	mo, ok := d.objects[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if mo.box == nil {
		return nil, fmt.Errorf("object %q has no solid geometry", name)
	}
	return mo.box, nil
}

// intersectBoxes returns the overlap of two boxes. Touching boxes overlap in
// a degenerate (flat) box; strictly disjoint boxes do not overlap at all.
func intersectBoxes(a, b Box) (Box, bool) {
	out := Box{
		MinX: max(a.MinX, b.MinX),
		MinY: max(a.MinY, b.MinY),
		MinZ: max(a.MinZ, b.MinZ),
		MaxX: min(a.MaxX, b.MaxX),
		MaxY: min(a.MaxY, b.MaxY),
		MaxZ: min(a.MaxZ, b.MaxZ),
	}
	if out.MaxX < out.MinX || out.MaxY < out.MinY || out.MaxZ < out.MinZ {
		return Box{}, false
	}
	return out, true
}

// shapeForBox derives topology counts from the number of axes with positive
// extent: a solid has 8 vertices, a face 4, an edge 2, a point 1.
func shapeForBox(b Box) Shape {
	dims := 0
	for _, extent := range []float64{b.MaxX - b.MinX, b.MaxY - b.MinY, b.MaxZ - b.MinZ} {
		if extent > 0 {
			dims++
		}
	}
	switch dims {
	case 3:
		return Shape{Vertices: 8, Faces: 6}
	case 2:
		return Shape{Vertices: 4, Faces: 1}
	case 1:
		return Shape{Vertices: 2}
	default:
		return Shape{Vertices: 1}
	}
}

var cellPattern = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]*$`)

type memSheet struct {
	name  string
	cells map[string]any
}

func (s *memSheet) Name() string {
	return s.name
}

func (s *memSheet) Set(cell string, value any) error {
	if !cellPattern.MatchString(cell) {
		return fmt.Errorf("invalid cell reference %q", cell)
	}
	s.cells[cell] = value
	return nil
}

func (s *memSheet) Get(cell string) (any, bool) {
	v, ok := s.cells[cell]
	return v, ok
}
