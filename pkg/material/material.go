// Package material implements the JSON-backed materials database used to
// attach physical properties to model parts: metals, dielectrics, and
// semiconductors, with binary-alloy interpolation and band alignment.
//
// Band energies are stored in meV. Lookups can request a different energy
// unit; dimensionless properties are returned unscaled.
package material

import (
	"fmt"
	"math"

	"github.com/qmod-labs/qmod/pkg/units"
)

// Kind classifies a material.
type Kind string

// Material kinds.
const (
	Metal      Kind = "metal"
	Dielectric Kind = "dielectric"
	Semi       Kind = "semi"
)

// Property names.
const (
	PropRelativePermittivity   = "relativePermittivity"
	PropElectronMass           = "electronMass"
	PropWorkFunction           = "workFunction"
	PropElectronAffinity       = "electronAffinity"
	PropDirectBandGap          = "directBandGap"
	PropValenceBandOffset      = "valenceBandOffset"
	PropSpinOrbitSplitting     = "spinOrbitSplitting"
	PropInterbandMatrixElement = "interbandMatrixElement"
	PropLuttingerGamma1        = "luttingerGamma1"
	PropLuttingerGamma2        = "luttingerGamma2"
	PropLuttingerGamma3        = "luttingerGamma3"
	PropChargeNeutralityLevel  = "chargeNeutralityLevel"
	PropSurfaceChargeDensity   = "surfaceChargeDensity"
)

// energyProps are the properties with the dimension of an energy; their
// stored values are in meV and get rescaled on lookup.
var energyProps = map[string]bool{
	PropWorkFunction:           true,
	PropElectronAffinity:       true,
	PropDirectBandGap:          true,
	PropValenceBandOffset:      true,
	PropChargeNeutralityLevel:  true,
	PropInterbandMatrixElement: true,
	PropSpinOrbitSplitting:     true,
}

// Properties is the raw property set of one database entry.
type Properties struct {
	Kind   Kind
	Values map[string]float64
}

// Clone returns a deep copy.
func (p Properties) Clone() Properties {
	values := make(map[string]float64, len(p.Values))
	for k, v := range p.Values {
		values[k] = v
	}
	return Properties{Kind: p.Kind, Values: values}
}

// NotFoundError indicates a property lookup miss.
type NotFoundError struct {
	Material string
	Property string
}

func (e *NotFoundError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("material %q not found", e.Material)
	}
	return fmt.Sprintf("material %q has no %q", e.Material, e.Property)
}

// Material is a resolved database entry with units awareness.
type Material struct {
	Name  string
	props Properties

	// energyScale converts a stored meV value into the requested energy
	// unit. 1.0 means meV.
	energyScale float64
}

// newMaterial wraps a property set. eunit selects the energy unit for
// lookups; empty means meV.
func newMaterial(name string, props Properties, eunit string) (*Material, error) {
	scale := 1.0
	if eunit != "" {
		u, err := units.Parse(eunit)
		if err != nil {
			return nil, err
		}
		scale = units.Convert(1, units.MeV, u)
	}
	return &Material{Name: name, props: props, energyScale: scale}, nil
}

// Kind returns the material classification.
func (m *Material) Kind() Kind { return m.props.Kind }

// Has reports whether the property is present.
func (m *Material) Has(key string) bool {
	_, ok := m.props.Values[key]
	return ok
}

// Get returns a property value, rescaled when the property carries an
// energy dimension.
func (m *Material) Get(key string) (float64, error) {
	v, ok := m.props.Values[key]
	if !ok {
		return 0, &NotFoundError{Material: m.Name, Property: key}
	}
	if energyProps[key] {
		v *= m.energyScale
	}
	return v, nil
}

// MustGet is Get for properties the caller knows are present.
func (m *Material) MustGet(key string) float64 {
	v, err := m.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Raw returns the untransformed property map. The map is shared; callers
// must not mutate it.
func (m *Material) Raw() map[string]float64 { return m.props.Values }

// HoleMass determines the effective mass for a valence band from the
// Luttinger parameters.
//
// band is "heavy" or "light" for a specific band, or "dos" for the
// density-of-states mass covering both. direction is a momentum direction
// "001" (alias "z"), "110", "111", or "dos" for the scalar
// density-of-states mass of an isotropic dispersion.
func (m *Material) HoleMass(band, direction string) (float64, error) {
	// DOS mass of both bands combined [Lax and Mavroides (1955), Eq. 17].
	if band == "dos" {
		heavy, err := m.HoleMass("heavy", direction)
		if err != nil {
			return 0, err
		}
		light, err := m.HoleMass("light", direction)
		if err != nil {
			return 0, err
		}
		return math.Pow(math.Pow(heavy, 1.5)+math.Pow(light, 1.5), 2.0/3.0), nil
	}

	gamma1, err := m.Get(PropLuttingerGamma1)
	if err != nil {
		return 0, err
	}
	gamma2, err := m.Get(PropLuttingerGamma2)
	if err != nil {
		return 0, err
	}
	gamma3, err := m.Get(PropLuttingerGamma3)
	if err != nil {
		return 0, err
	}

	var sign float64
	switch band {
	case "heavy":
		sign = -1
	case "light":
		sign = 1
	default:
		return 0, fmt.Errorf("invalid band: %q", band)
	}

	// DOS mass of an anisotropic band, expansion from Lax and Mavroides
	// (1955) Eq. 15; cf. Lawaetz (1971) Eqs. 33-36.
	if direction == "dos" {
		gammaBar := math.Sqrt(2 * (gamma2*gamma2 + gamma3*gamma3))
		gammaHL := -sign * 6 * (gamma3*gamma3 - gamma2*gamma2) /
			(gammaBar * (gamma1 + sign*gammaBar))
		return 1 / (gamma1 + sign*gammaBar) *
			math.Pow(1+0.05*gammaHL+0.0164*gammaHL*gammaHL, 2.0/3.0), nil
	}

	// Specific band and direction [Vurgaftman et al. (2001) Eqs. 2.16-2.17].
	switch direction {
	case "z", "001":
		return 1 / (gamma1 + sign*2*gamma2), nil
	case "110":
		return 2 / (2*gamma1 + sign*gamma2 + sign*3*gamma3), nil
	case "111":
		return 1 / (gamma1 + sign*2*gamma3), nil
	}
	return 0, fmt.Errorf("invalid direction: %q", direction)
}
