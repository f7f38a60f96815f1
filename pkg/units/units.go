// Package units provides the unit conversions, physical constants, and spin
// matrices shared by the physics-facing parts of the model toolkit.
//
// A Unit is its scale factor to the corresponding SI base unit, so converting
// a value between two units of the same dimension is a ratio of scales. The
// package does not track dimensions; callers are expected to convert between
// commensurable units only.
package units

import "fmt"

// Unit is a scale factor to SI.
type Unit float64

// Length units.
const (
	Meter    Unit = 1
	Cm       Unit = 1e-2
	Um       Unit = 1e-6
	Nm       Unit = 1e-9
	Angstrom Unit = 1e-10
)

// Energy units.
const (
	Joule   Unit = 1
	Erg     Unit = 1e-7
	EV      Unit = 1.602176634e-19
	MeV     Unit = EV * 1e-3
	MicroEV Unit = EV * 1e-6
)

// Mass units.
const (
	Kg   Unit = 1
	Gram Unit = 1e-3
)

// Temperature units.
const (
	Kelvin Unit = 1
	MK     Unit = 1e-3
)

// Electromagnetic and miscellaneous units.
const (
	Second  Unit = 1
	Coulomb Unit = 1
	Tesla   Unit = 1
	Farad   Unit = 1
	Volt    Unit = 1
)

var byName = map[string]Unit{
	"m":        Meter,
	"cm":       Cm,
	"um":       Um,
	"nm":       Nm,
	"angstrom": Angstrom,
	"J":        Joule,
	"erg":      Erg,
	"eV":       EV,
	"meV":      MeV,
	"microeV":  MicroEV,
	"kg":       Kg,
	"g":        Gram,
	"K":        Kelvin,
	"mK":       MK,
	"s":        Second,
	"coulomb":  Coulomb,
	"tesla":    Tesla,
	"T":        Tesla,
	"farad":    Farad,
	"volt":     Volt,
	"V":        Volt,
}

// Parse resolves a unit by name.
func Parse(name string) (Unit, error) {
	u, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown unit: %s", name)
	}
	return u, nil
}

// Convert re-expresses value from one unit in another unit of the same
// dimension.
func Convert(value float64, from, to Unit) float64 {
	return value * float64(from) / float64(to)
}

// In converts a value expressed in SI to the given unit.
func In(siValue float64, u Unit) float64 {
	return siValue / float64(u)
}
