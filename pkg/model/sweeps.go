package model

import "fmt"

// Sweep types.
const (
	SweepSparse = "sparse"
	SweepDense  = "dense"
)

// Geometric sweep parameter kinds: parameters varied through the CAD
// spreadsheet versus parameters declared in build scripts.
const (
	GeomSweepCAD    = "freeCAD"
	GeomSweepScript = "python"
)

// GeomSweep records a sweep over one geometric parameter.
type GeomSweep struct {
	Values []float64 `json:"vals"`
	Type   string    `json:"type"`
}

// SweepPart is one swept quantity of a physics sweep.
type SweepPart struct {
	Part     string    `json:"part"`
	Quantity string    `json:"quantity"`
	Symbol   string    `json:"symbol"`
	Values   []float64 `json:"values"`
	Unit     string    `json:"unit"`
}

// PhysicsSweep describes the voltage/parameter sweep to execute.
// Only sparse sweeps are supported: every swept quantity must provide the
// same number of values.
type PhysicsSweep struct {
	Type   string               `json:"type"`
	Length int                  `json:"length"`
	Parts  map[string]SweepPart `json:"sweepParts"`
}

// MeshInfo holds per-part mesh refinement settings.
type MeshInfo struct {
	MaxSize    float64 `json:"maxSize,omitempty"`
	GrowthRate float64 `json:"growthRate,omitempty"`
}

// JobSettings describes how a generation job is executed.
type JobSettings struct {
	RootPath        string         `json:"rootPath,omitempty"`
	Sequence        []string       `json:"jobSequence,omitempty"`
	NumParallelJobs int            `json:"numParallelJobs,omitempty"`
	NumCoresPerJob  int            `json:"numCoresPerJob,omitempty"`
	GeoGenArgs      map[string]any `json:"geoGenArgs,omitempty"`
	PostProcArgs    map[string]any `json:"postProcArgs,omitempty"`
}

// IsZero reports whether no job has been configured.
func (j JobSettings) IsZero() bool {
	return j.RootPath == "" && len(j.Sequence) == 0 && j.NumParallelJobs == 0 &&
		j.NumCoresPerJob == 0 && len(j.GeoGenArgs) == 0 && len(j.PostProcArgs) == 0
}

// PathSettings holds paths to external executables used by generation jobs.
type PathSettings struct {
	SolverExecPath string `json:"solverExecPath,omitempty"`
	MPIPath        string `json:"mpiPath,omitempty"`
	PythonPath     string `json:"pythonPath,omitempty"`
	FreeCADPath    string `json:"freeCADPath,omitempty"`
}

// IsZero reports whether no paths have been configured.
func (p PathSettings) IsZero() bool {
	return p == PathSettings{}
}

// SetGeomSweep records a sweep over a geometric parameter. The sweep type
// must be one of GeomSweepCAD or GeomSweepScript.
func (d *Document) SetGeomSweep(param string, values []float64, sweepType string) error {
	if sweepType != GeomSweepCAD && sweepType != GeomSweepScript {
		return &ValidationError{Field: "geomSweep." + param, Message: fmt.Sprintf("unknown sweep type %q", sweepType)}
	}
	if len(values) == 0 {
		return &ValidationError{Field: "geomSweep." + param, Message: "sweep needs at least one value"}
	}
	if d.GeomSweeps == nil {
		d.GeomSweeps = map[string]GeomSweep{}
	}
	d.GeomSweeps[param] = GeomSweep{Values: values, Type: sweepType}
	return nil
}

// SetPhysicsSweep adds one swept quantity to the physics sweep. The sweep is
// keyed quantity_part, matching how solvers name their sweep parameters.
// All sweep parts must have the same length.
func (d *Document) SetPhysicsSweep(partName, quantity string, values []float64, unit, symbol string, dense bool) error {
	if len(values) == 0 {
		return &ValidationError{Field: "physicsSweep", Message: "sweep needs at least one value"}
	}
	if symbol == "" {
		symbol = quantity
	}

	for key, existing := range d.PhysicsSweep.Parts {
		if len(existing.Values) != len(values) {
			return &ValidationError{
				Field:   "physicsSweep",
				Message: fmt.Sprintf("sweep length %d does not match existing sweep %q of length %d; only matched sparse sweeps are supported", len(values), key, len(existing.Values)),
			}
		}
	}

	if d.PhysicsSweep.Parts == nil {
		d.PhysicsSweep.Parts = map[string]SweepPart{}
	}
	key := fmt.Sprintf("%s_%s", quantity, partName)
	d.PhysicsSweep.Parts[key] = SweepPart{
		Part:     partName,
		Quantity: quantity,
		Symbol:   symbol,
		Values:   values,
		Unit:     unit,
	}
	d.PhysicsSweep.Length = len(values)
	if dense {
		d.PhysicsSweep.Type = SweepDense
	} else {
		d.PhysicsSweep.Type = SweepSparse
	}
	return nil
}

// SetJob configures the generation job for this model.
func (d *Document) SetJob(settings JobSettings) {
	if len(settings.Sequence) == 0 {
		settings.Sequence = []string{"geoGen"}
	}
	if settings.NumParallelJobs == 0 {
		settings.NumParallelJobs = 1
	}
	if settings.NumCoresPerJob == 0 {
		settings.NumCoresPerJob = 1
	}
	d.JobSettings = settings
}

// SetPaths configures the external executable paths.
func (d *Document) SetPaths(paths PathSettings) {
	d.PathSettings = paths
}
