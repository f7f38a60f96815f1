package material

import (
	"fmt"
	"regexp"
	"strconv"
)

// Compound-name forms recognized for binary alloys:
//
//	A_y B_x C   e.g. In0.75Ga0.25As  -> (InAs, GaAs, x)
//	A B_y C_x   e.g. InAs0.5Sb0.5    -> (InAs, InSb, x)
//	(A)_y (B)_x e.g. (InAs)0.6(GaSb)0.4
var (
	alloyCationPattern  = regexp.MustCompile(`^([A-Z][a-z]*)(\d+\.?\d*|\.\d+)([A-Z][a-z]*)(\d+\.?\d*|\.\d+)([A-Z][a-z]*)$`)
	alloyAnionPattern   = regexp.MustCompile(`^([A-Z][a-z]*)([A-Z][a-z]*)(\d+\.?\d*|\.\d+)([A-Z][a-z]*)(\d+\.?\d*|\.\d+)$`)
	alloyGroupedPattern = regexp.MustCompile(`^\((.+)\)(\d+\.?\d*|\.\d+)\((.+)\)(\d+\.?\d*|\.\d+)$`)
)

// resolveAlloy parses name as a binary alloy of database materials and
// interpolates its properties.
func (db *Database) resolveAlloy(name string) (Properties, error) {
	if m := alloyCationPattern.FindStringSubmatch(name); m != nil {
		a, y, b, x, c := m[1], atof(m[2]), m[3], atof(m[4]), m[5]
		return db.interpolate(a+c, b+c, x/(x+y))
	}
	if m := alloyAnionPattern.FindStringSubmatch(name); m != nil {
		a, b, y, c, x := m[1], m[2], atof(m[3]), m[4], atof(m[5])
		return db.interpolate(a+b, a+c, x/(x+y))
	}
	if m := alloyGroupedPattern.FindStringSubmatch(name); m != nil {
		a, y, b, x := m[1], atof(m[2]), m[3], atof(m[4])
		return db.interpolate(a, b, x/(x+y))
	}
	return Properties{}, &NotFoundError{Material: name}
}

// interpolate computes properties of the alloy A_{1-x} B_x.
//
// Properties present in both endpoints are combined by linear interpolation
// with a quadratic bowing correction when a bowing parameter is registered,
// following Eq. 4.1 of Vurgaftman et al., J. Appl. Phys. 89, 5837 (2001):
//
//	O(A_{1-x} B_x) = (1-x) O(A) + x O(B) - x(1-x) O_AB
func (db *Database) interpolate(nameA, nameB string, x float64) (Properties, error) {
	if x < 0 || x > 1 {
		return Properties{}, fmt.Errorf("alloy fraction %g out of range [0, 1]", x)
	}

	// Bowing parameters are stored for one orientation of the pair only.
	if _, ok := db.bowing[bowingKey{A: nameB, B: nameA}]; ok {
		nameA, nameB = nameB, nameA
		x = 1 - x
	}

	matA, err := db.FindWithUnit(nameA, "meV")
	if err != nil {
		return Properties{}, err
	}
	matB, err := db.FindWithUnit(nameB, "meV")
	if err != nil {
		return Properties{}, err
	}
	if matA.Kind() != matB.Kind() {
		return Properties{}, fmt.Errorf("cannot mix %s %q with %s %q", matA.Kind(), nameA, matB.Kind(), nameB)
	}

	bow := db.bowing[bowingKey{A: nameA, B: nameB}]

	alloy := Properties{Kind: matA.Kind(), Values: map[string]float64{}}
	for key, valA := range matA.Raw() {
		valB, ok := matB.Raw()[key]
		if !ok {
			continue
		}
		bowVal := bow.Values[key]
		alloy.Values[key] = (1-x)*valA + x*valB - x*(1-x)*bowVal
	}
	return alloy, nil
}

// atof parses a fraction matched by the alloy patterns; the regexps only
// admit valid floats.
func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
