package material

import "fmt"

// referenceMaterial anchors the absolute energy scale: the vacuum level is
// defined through the electron affinity of InSb, and all other materials are
// aligned to it via their valence band offsets.
const referenceMaterial = "InSb"

// ConductionBandMinimum returns the energy of the conduction band minimum
// E_c of a semiconductor, referenced to the vacuum level.
//
// Empirical band offsets are preferred over raw electron affinities because
// Anderson's rule ignores interface effects (cf. Vurgaftman et al. (2001)).
// When the offsets needed for alignment are missing, the result falls back
// on Anderson's rule, i.e. -electronAffinity.
func (db *Database) ConductionBandMinimum(m *Material) (float64, error) {
	vbo, errVBO := m.Get(PropValenceBandOffset)
	gap, errGap := m.Get(PropDirectBandGap)
	refLevel, errRef := db.referenceLevel(m)
	if errVBO == nil && errGap == nil && errRef == nil {
		return vbo + gap + refLevel, nil
	}

	// Anderson's rule.
	chi, err := m.Get(PropElectronAffinity)
	if err != nil {
		return 0, fmt.Errorf("cannot align %q: %w", m.Name, err)
	}
	return -chi, nil
}

// ValenceBandMaximum returns the energy of the valence band maximum E_v of a
// semiconductor, referenced to the vacuum level. See ConductionBandMinimum
// for the alignment convention.
func (db *Database) ValenceBandMaximum(m *Material) (float64, error) {
	vbo, errVBO := m.Get(PropValenceBandOffset)
	refLevel, errRef := db.referenceLevel(m)
	if errVBO == nil && errRef == nil {
		return vbo + refLevel, nil
	}

	// Anderson's rule.
	chi, err := m.Get(PropElectronAffinity)
	if err != nil {
		return 0, fmt.Errorf("cannot align %q: %w", m.Name, err)
	}
	gap, err := m.Get(PropDirectBandGap)
	if err != nil {
		return 0, fmt.Errorf("cannot align %q: %w", m.Name, err)
	}
	return -(chi + gap), nil
}

// referenceLevel computes the absolute position of the reference material's
// valence band offset zero, expressed in m's energy unit.
func (db *Database) referenceLevel(m *Material) (float64, error) {
	props, ok := db.materials[referenceMaterial]
	if !ok {
		return 0, &NotFoundError{Material: referenceMaterial}
	}
	for _, key := range []string{PropElectronAffinity, PropDirectBandGap, PropValenceBandOffset} {
		if _, ok := props.Values[key]; !ok {
			return 0, &NotFoundError{Material: referenceMaterial, Property: key}
		}
	}
	level := -(props.Values[PropElectronAffinity] +
		props.Values[PropDirectBandGap] +
		props.Values[PropValenceBandOffset])
	return level * m.energyScale, nil
}

// ConductionBandOffset returns E_c - E_c,ref between two semiconductors.
// Falls back on Anderson's rule (difference of electron affinities) when
// band offsets are missing.
func ConductionBandOffset(m, ref *Material) (float64, error) {
	if m.energyScale != ref.energyScale {
		return 0, fmt.Errorf("materials %q and %q use different energy units", m.Name, ref.Name)
	}

	vbo, errVBO := m.Get(PropValenceBandOffset)
	gap, errGap := m.Get(PropDirectBandGap)
	refVBO, errRefVBO := ref.Get(PropValenceBandOffset)
	refGap, errRefGap := ref.Get(PropDirectBandGap)
	if errVBO == nil && errGap == nil && errRefVBO == nil && errRefGap == nil {
		return (vbo + gap) - (refVBO + refGap), nil
	}

	chi, err := m.Get(PropElectronAffinity)
	if err != nil {
		return 0, err
	}
	refChi, err := ref.Get(PropElectronAffinity)
	if err != nil {
		return 0, err
	}
	return refChi - chi, nil
}

// ValenceBandOffset returns E_v - E_v,ref between two semiconductors.
func ValenceBandOffset(m, ref *Material) (float64, error) {
	if m.energyScale != ref.energyScale {
		return 0, fmt.Errorf("materials %q and %q use different energy units", m.Name, ref.Name)
	}

	vbo, errVBO := m.Get(PropValenceBandOffset)
	refVBO, errRefVBO := ref.Get(PropValenceBandOffset)
	if errVBO == nil && errRefVBO == nil {
		return vbo - refVBO, nil
	}

	eIon, err := ionizationEnergy(m)
	if err != nil {
		return 0, err
	}
	eRef, err := ionizationEnergy(ref)
	if err != nil {
		return 0, err
	}
	return eRef - eIon, nil
}

func ionizationEnergy(m *Material) (float64, error) {
	chi, err := m.Get(PropElectronAffinity)
	if err != nil {
		return 0, err
	}
	gap, err := m.Get(PropDirectBandGap)
	if err != nil {
		return 0, err
	}
	return chi + gap, nil
}
