// Package model implements the JSON model document that carries project
// metadata for a CAD-hosted device build: geometric parameters, CAD object
// descriptors, 3D part definitions, sweeps, and job settings.
//
// The document lives at a user-chosen path and is edited in synchronous
// load -> mutate -> save sessions. There is no locking: a single user and a
// single process are assumed.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Top-level section names of the model document.
const (
	SectionGeometricParams = "geometricParams"
	SectionFreeCADInfo     = "freeCADInfo"
	SectionParts           = "parts3D"
	SectionBuildOrder      = "buildOrder"
	SectionMaterials       = "materials"
	SectionGeomSweep       = "geomSweep"
	SectionPhysicsSweep    = "physicsSweep"
	SectionMeshInfo        = "meshInfo"
	SectionJobSettings     = "jobSettings"
	SectionPathSettings    = "pathSettings"
)

// ObjectInfo describes a single CAD document object tracked by the model.
type ObjectInfo struct {
	// Label is the human-readable label shown in the CAD object tree.
	Label string `json:"label"`

	// Type tags the role of the object: "background", "domain" or "boundary".
	Type string `json:"type"`

	// Physics holds open-ended per-object physics properties.
	Physics map[string]any `json:"physics,omitempty"`
}

// Object type tags.
const (
	ObjectBackground = "background"
	ObjectDomain     = "domain"
	ObjectBoundary   = "boundary"
)

// ValidObjectType reports whether t is a known object type tag.
func ValidObjectType(t string) bool {
	switch t {
	case ObjectBackground, ObjectDomain, ObjectBoundary:
		return true
	}
	return false
}

// Document is the in-memory form of a model document.
//
// Unknown top-level sections found in the file are preserved verbatim in
// Extra so that saving never drops data written by other tools.
type Document struct {
	GeometricParams map[string]float64    `json:"geometricParams"`
	FreeCADInfo     map[string]ObjectInfo `json:"freeCADInfo"`
	Parts           map[string]*Part      `json:"parts3D"`
	BuildOrder      []string              `json:"buildOrder"`
	Materials       map[string]any        `json:"materials"`
	GeomSweeps      map[string]GeomSweep  `json:"geomSweep"`
	PhysicsSweep    PhysicsSweep          `json:"physicsSweep"`
	MeshInfo        map[string]MeshInfo   `json:"meshInfo"`
	JobSettings     JobSettings           `json:"jobSettings"`
	PathSettings    PathSettings          `json:"pathSettings"`

	Extra map[string]json.RawMessage `json:"-"`
}

// New returns an empty model document skeleton with all sections initialized.
func New() *Document {
	return &Document{
		GeometricParams: map[string]float64{},
		FreeCADInfo:     map[string]ObjectInfo{},
		Parts:           map[string]*Part{},
		BuildOrder:      []string{},
		Materials:       map[string]any{},
		GeomSweeps:      map[string]GeomSweep{},
		PhysicsSweep:    PhysicsSweep{Type: SweepSparse, Length: 1, Parts: map[string]SweepPart{}},
		MeshInfo:        map[string]MeshInfo{},
	}
}

// Load reads a model document from path.
// A missing file yields *NotFoundError, malformed JSON yields *ParseError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read model document: %w", err)
	}

	doc := New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// LoadOrInit loads the document at path, writing an empty skeleton first if
// no file exists yet. This backs the "locate model file" action.
func LoadOrInit(path string) (*Document, error) {
	doc, err := Load(path)
	if err == nil {
		return doc, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	doc = New()
	if err := doc.Save(path); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save serializes the document to path, replacing any existing file.
// The write goes through a temp file in the same directory and a rename, so
// a crash mid-save never leaves a truncated document behind.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write model document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write model document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace model document: %w", err)
	}
	return nil
}

// Update merges a single key into the named top-level section, leaving every
// other section untouched.
//
// For typed sections the value must be convertible to the section's element
// type (a float for geometricParams, an object descriptor for freeCADInfo).
// Unknown sections are created or merged as free-form JSON objects.
func (d *Document) Update(section, key string, value any) error {
	switch section {
	case SectionGeometricParams:
		f, ok := toFloat(value)
		if !ok {
			return &ValidationError{Field: section, Message: fmt.Sprintf("value for %q must be numeric, got %T", key, value)}
		}
		if d.GeometricParams == nil {
			d.GeometricParams = map[string]float64{}
		}
		d.GeometricParams[key] = f
		return nil

	case SectionFreeCADInfo:
		info, err := toObjectInfo(value)
		if err != nil {
			return &ValidationError{Field: section, Message: err.Error()}
		}
		if d.FreeCADInfo == nil {
			d.FreeCADInfo = map[string]ObjectInfo{}
		}
		d.FreeCADInfo[key] = info
		return nil

	case SectionMaterials:
		if d.Materials == nil {
			d.Materials = map[string]any{}
		}
		d.Materials[key] = value
		return nil

	default:
		return d.updateExtra(section, key, value)
	}
}

// updateExtra merges key into a free-form section kept as raw JSON.
func (d *Document) updateExtra(section, key string, value any) error {
	obj := map[string]json.RawMessage{}
	if raw, ok := d.Extra[section]; ok {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return &ValidationError{Field: section, Message: fmt.Sprintf("section is not a JSON object: %v", err)}
		}
	}

	enc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s.%s: %w", section, key, err)
	}
	obj[key] = enc

	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to encode section %s: %w", section, err)
	}
	if d.Extra == nil {
		d.Extra = map[string]json.RawMessage{}
	}
	d.Extra[section] = raw
	return nil
}

// Merge overlays the in-memory document onto other, key by key within each
// section. Keys present in d win. This mirrors the reload-with-update
// behavior used when a macro edits a document that already exists on disk.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	for k, v := range other.GeometricParams {
		if _, ok := d.GeometricParams[k]; !ok {
			d.GeometricParams[k] = v
		}
	}
	for k, v := range other.FreeCADInfo {
		if _, ok := d.FreeCADInfo[k]; !ok {
			d.FreeCADInfo[k] = v
		}
	}
	for k, v := range other.Parts {
		if _, ok := d.Parts[k]; !ok {
			d.Parts[k] = v
		}
	}
	for k, v := range other.Materials {
		if _, ok := d.Materials[k]; !ok {
			d.Materials[k] = v
		}
	}
	for k, v := range other.GeomSweeps {
		if _, ok := d.GeomSweeps[k]; !ok {
			d.GeomSweeps[k] = v
		}
	}
	for k, v := range other.MeshInfo {
		if _, ok := d.MeshInfo[k]; !ok {
			d.MeshInfo[k] = v
		}
	}
	if len(d.BuildOrder) == 0 {
		d.BuildOrder = other.BuildOrder
	}
	for k, v := range other.Extra {
		if _, ok := d.Extra[k]; !ok {
			if d.Extra == nil {
				d.Extra = map[string]json.RawMessage{}
			}
			d.Extra[k] = v
		}
	}
}

// SetParam records a geometric parameter value.
func (d *Document) SetParam(name string, value float64) {
	if d.GeometricParams == nil {
		d.GeometricParams = map[string]float64{}
	}
	d.GeometricParams[name] = value
}

// Param returns a geometric parameter value.
func (d *Document) Param(name string) (float64, bool) {
	v, ok := d.GeometricParams[name]
	return v, ok
}

// SetObject registers or replaces the descriptor for a CAD object.
// The type tag must be one of the known object types.
func (d *Document) SetObject(id string, info ObjectInfo) error {
	if !ValidObjectType(info.Type) {
		return &ValidationError{Field: "freeCADInfo." + id, Message: fmt.Sprintf("unknown object type %q", info.Type)}
	}
	if d.FreeCADInfo == nil {
		d.FreeCADInfo = map[string]ObjectInfo{}
	}
	d.FreeCADInfo[id] = info
	return nil
}

// Object returns the descriptor for a CAD object.
func (d *Document) Object(id string) (ObjectInfo, bool) {
	info, ok := d.FreeCADInfo[id]
	return info, ok
}

// documentJSON mirrors Document for (de)serialization of the known sections.
type documentJSON struct {
	GeometricParams map[string]float64    `json:"geometricParams"`
	FreeCADInfo     map[string]ObjectInfo `json:"freeCADInfo"`
	Parts           map[string]*Part      `json:"parts3D,omitempty"`
	BuildOrder      []string              `json:"buildOrder,omitempty"`
	Materials       map[string]any        `json:"materials,omitempty"`
	GeomSweeps      map[string]GeomSweep  `json:"geomSweep,omitempty"`
	PhysicsSweep    *PhysicsSweep         `json:"physicsSweep,omitempty"`
	MeshInfo        map[string]MeshInfo   `json:"meshInfo,omitempty"`
	JobSettings     *JobSettings          `json:"jobSettings,omitempty"`
	PathSettings    *PathSettings         `json:"pathSettings,omitempty"`
}

var knownSections = map[string]bool{
	SectionGeometricParams: true,
	SectionFreeCADInfo:     true,
	SectionParts:           true,
	SectionBuildOrder:      true,
	SectionMaterials:       true,
	SectionGeomSweep:       true,
	SectionPhysicsSweep:    true,
	SectionMeshInfo:        true,
	SectionJobSettings:     true,
	SectionPathSettings:    true,
}

// UnmarshalJSON decodes the known sections and stashes all remaining
// top-level keys in Extra untouched.
func (d *Document) UnmarshalJSON(data []byte) error {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}

	var known documentJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	d.GeometricParams = known.GeometricParams
	d.FreeCADInfo = known.FreeCADInfo
	d.Parts = known.Parts
	d.BuildOrder = known.BuildOrder
	d.Materials = known.Materials
	d.GeomSweeps = known.GeomSweeps
	d.MeshInfo = known.MeshInfo
	if known.PhysicsSweep != nil {
		d.PhysicsSweep = *known.PhysicsSweep
	}
	if known.JobSettings != nil {
		d.JobSettings = *known.JobSettings
	}
	if known.PathSettings != nil {
		d.PathSettings = *known.PathSettings
	}

	if d.GeometricParams == nil {
		d.GeometricParams = map[string]float64{}
	}
	if d.FreeCADInfo == nil {
		d.FreeCADInfo = map[string]ObjectInfo{}
	}
	if d.Parts == nil {
		d.Parts = map[string]*Part{}
	}

	d.Extra = nil
	for key, raw := range sections {
		if knownSections[key] {
			continue
		}
		if d.Extra == nil {
			d.Extra = map[string]json.RawMessage{}
		}
		d.Extra[key] = raw
	}
	return nil
}

// MarshalJSON emits the known sections plus any preserved extras.
// Keys are emitted in sorted order so repeated saves are byte-stable.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}

	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode section %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}

	if err := put(SectionGeometricParams, emptyIfNil(d.GeometricParams)); err != nil {
		return nil, err
	}
	if err := put(SectionFreeCADInfo, emptyObjectsIfNil(d.FreeCADInfo)); err != nil {
		return nil, err
	}
	if len(d.Parts) > 0 {
		if err := put(SectionParts, d.Parts); err != nil {
			return nil, err
		}
	}
	if len(d.BuildOrder) > 0 {
		if err := put(SectionBuildOrder, d.BuildOrder); err != nil {
			return nil, err
		}
	}
	if len(d.Materials) > 0 {
		if err := put(SectionMaterials, d.Materials); err != nil {
			return nil, err
		}
	}
	if len(d.GeomSweeps) > 0 {
		if err := put(SectionGeomSweep, d.GeomSweeps); err != nil {
			return nil, err
		}
	}
	if len(d.PhysicsSweep.Parts) > 0 {
		if err := put(SectionPhysicsSweep, d.PhysicsSweep); err != nil {
			return nil, err
		}
	}
	if len(d.MeshInfo) > 0 {
		if err := put(SectionMeshInfo, d.MeshInfo); err != nil {
			return nil, err
		}
	}
	if !d.JobSettings.IsZero() {
		if err := put(SectionJobSettings, d.JobSettings); err != nil {
			return nil, err
		}
	}
	if !d.PathSettings.IsZero() {
		if err := put(SectionPathSettings, d.PathSettings); err != nil {
			return nil, err
		}
	}

	for key, raw := range d.Extra {
		out[key] = raw
	}

	return json.Marshal(out)
}

func emptyIfNil(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func emptyObjectsIfNil(m map[string]ObjectInfo) map[string]ObjectInfo {
	if m == nil {
		return map[string]ObjectInfo{}
	}
	return m
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toObjectInfo(v any) (ObjectInfo, error) {
	switch info := v.(type) {
	case ObjectInfo:
		return info, nil
	case *ObjectInfo:
		return *info, nil
	case map[string]any:
		raw, err := json.Marshal(info)
		if err != nil {
			return ObjectInfo{}, err
		}
		var out ObjectInfo
		if err := json.Unmarshal(raw, &out); err != nil {
			return ObjectInfo{}, err
		}
		return out, nil
	}
	return ObjectInfo{}, fmt.Errorf("value must be an object descriptor, got %T", v)
}
