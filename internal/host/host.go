// Package host defines the scripting surface of a CAD document object model,
// together with an in-memory implementation used for tests and offline runs.
//
// Geometry macros never talk to a document through ambient globals; every
// operation takes an explicit Document handle.
package host

import "fmt"

// Shape describes the topology of a document object at the level macros care
// about. A shape with no vertices is empty.
type Shape struct {
	Vertices int
	Faces    int
}

// Empty reports whether the shape has no material at all.
func (s Shape) Empty() bool {
	return s.Vertices == 0
}

// Object is a named entry in a host document. Name is the document-unique
// identifier; Label is the user-facing name mirrored into model documents.
type Object struct {
	Name  string
	Label string
	Shape Shape
}

// Spreadsheet is a cell-addressed table embedded in a host document.
type Spreadsheet interface {
	// Name returns the document object name of the sheet.
	Name() string

	// Set writes a value into a cell reference such as "A1" or "B12".
	Set(cell string, value any) error

	// Get reads a cell. The second return is false when the cell is unset.
	Get(cell string) (any, bool)
}

// Document is the object model of an open CAD document. Implementations are
// not safe for concurrent use; macros run synchronously against a single
// document.
type Document interface {
	// Create adds an object with an explicitly given topology, for
	// imported or virtual geometry the host cannot derive itself.
	Create(name, label string, shape Shape) (*Object, error)

	// Remove deletes an object by name.
	Remove(name string) error

	// Object looks up an object by name.
	Object(name string) (*Object, bool)

	// ObjectsByLabel returns all objects carrying the given label.
	ObjectsByLabel(label string) []*Object

	// Names lists all solid object names in the document, sorted.
	Names() []string

	// Intersect materializes the boolean intersection of objects a and b
	// as a new document object called name. An empty intersection is a
	// valid result, not an error: the returned object then has an empty
	// shape and it is the caller's decision whether to keep it.
	Intersect(name, a, b string) (*Object, error)

	// Extrude sweeps a planar sketch object along its normal by length,
	// materializing the solid as a new document object called name.
	Extrude(name, sketch string, length float64) (*Object, error)

	// Spreadsheet returns the named sheet, creating it if absent.
	Spreadsheet(name string) Spreadsheet

	// Recompute re-evaluates the document's dependency graph.
	Recompute() error
}

// NotFoundError reports a reference to an object the document does not
// contain.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document has no object %q", e.Name)
}

// DuplicateError reports an attempt to create an object under a name that is
// already taken.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("document already has an object %q", e.Name)
}
