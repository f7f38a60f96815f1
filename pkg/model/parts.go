package model

import "fmt"

// Directives a 3D part can be built with.
const (
	DirectiveExtrude     = "extrude"
	DirectiveWire        = "wire"
	DirectiveWireShell   = "wireShell"
	DirectiveSAG         = "SAG"
	DirectiveLithography = "lithography"
)

// Domain types a 3D part can represent.
const (
	DomainSemiconductor = "semiconductor"
	DomainMetalGate     = "metalGate"
	DomainVirtual       = "virtual"
	DomainDielectric    = "dielectric"
)

// ValidDirective reports whether d is a known build directive.
func ValidDirective(d string) bool {
	switch d {
	case DirectiveExtrude, DirectiveWire, DirectiveWireShell, DirectiveSAG, DirectiveLithography:
		return true
	}
	return false
}

// ValidDomainType reports whether t is a known domain type.
func ValidDomainType(t string) bool {
	switch t {
	case DomainSemiconductor, DomainMetalGate, DomainVirtual, DomainDielectric:
		return true
	}
	return false
}

// Part describes how a 3D part is constructed from a 2D CAD object and what
// physical role it plays.
type Part struct {
	// FCName is the name of the 2D CAD object the part is built from.
	FCName string `json:"fcName"`

	// Directive selects the build operation (extrude, wire, ...).
	Directive string `json:"directive"`

	// DomainType classifies the part for the physics solver.
	DomainType string `json:"domainType"`

	// Material names an entry in the materials database.
	Material string `json:"material,omitempty"`

	Z0        *float64 `json:"z0,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`

	// Wire shell fields.
	TargetWire string `json:"targetWire,omitempty"`
	ShellVerts []int  `json:"shellVerts,omitempty"`
	DepoZone   string `json:"depoZone,omitempty"`
	EtchZone   string `json:"etchZone,omitempty"`

	// SAG fields.
	ZMiddle *float64 `json:"zMiddle,omitempty"`
	TIn     *float64 `json:"tIn,omitempty"`
	TOut    *float64 `json:"tOut,omitempty"`

	// Lithography fields.
	LayerNum  int      `json:"layerNum,omitempty"`
	LithoBase []string `json:"lithoBase,omitempty"`
	FillLitho *bool    `json:"fillLitho,omitempty"`

	// Meshing hints.
	MeshMaxSize    *float64 `json:"meshMaxSize,omitempty"`
	MeshGrowthRate *float64 `json:"meshGrowthRate,omitempty"`

	// BoundaryCondition maps a condition type to its value, e.g.
	// {"voltage": 1.0}.
	BoundaryCondition map[string]any `json:"boundaryCondition,omitempty"`

	// SubtractList names parts to subtract when forming the final solid.
	SubtractList []string `json:"subtractList,omitempty"`

	// FileNames tracks CAD entities generated for this part: CAD object
	// name -> file on disk.
	FileNames map[string]string `json:"fileNames,omitempty"`
}

// AddPart registers a new 3D part and appends it to the build order.
//
// The part is validated the same way the interactive builders do it:
// duplicate names, unknown directives or domain types, and setting both a
// deposition and an etch zone are all rejected.
func (d *Document) AddPart(name string, part *Part) error {
	if name == "" {
		return &ValidationError{Field: "part", Message: "part name cannot be empty"}
	}
	if _, exists := d.Parts[name]; exists {
		return &ValidationError{Field: "part." + name, Message: "part name already in use"}
	}
	if !ValidDirective(part.Directive) {
		return &ValidationError{Field: "part." + name, Message: fmt.Sprintf("unknown directive %q", part.Directive)}
	}
	if !ValidDomainType(part.DomainType) {
		return &ValidationError{Field: "part." + name, Message: fmt.Sprintf("unknown domain type %q", part.DomainType)}
	}
	if part.DepoZone != "" && part.EtchZone != "" {
		return &ValidationError{Field: "part." + name, Message: "depoZone and etchZone cannot both be set"}
	}

	if part.FileNames == nil {
		part.FileNames = map[string]string{}
	}
	if d.Parts == nil {
		d.Parts = map[string]*Part{}
	}
	d.Parts[name] = part
	d.BuildOrder = append(d.BuildOrder, name)
	return nil
}

// RegisterCADPart records that the CAD entity fcName generated for part name
// was written to fileName. With reset, previous registrations are dropped
// first.
func (d *Document) RegisterCADPart(name, fcName, fileName string, reset bool) error {
	part, ok := d.Parts[name]
	if !ok {
		return &ValidationError{Field: "part." + name, Message: "part is not registered"}
	}
	if reset || part.FileNames == nil {
		part.FileNames = map[string]string{}
	}
	part.FileNames[fcName] = fileName
	return nil
}
