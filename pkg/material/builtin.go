package material

// Builtin returns the bundled materials database.
//
// Metals and dielectrics carry work functions and permittivities;
// semiconductor band parameters follow Vurgaftman et al., J. Appl. Phys. 89,
// 5815 (2001), with electron affinities from the Ioffe Institute tables.
// Band energies are in meV, surface charge densities in cm^-2 eV^-1.
func Builtin() *Database {
	db := NewDatabase()

	// Metals. The large permittivity approximates a perfect screener.
	db.Add("Al", Metal, map[string]float64{
		PropRelativePermittivity: 1000,
		PropWorkFunction:         4280,
	})
	db.Add("Au", Metal, map[string]float64{
		PropRelativePermittivity: 1000,
		PropWorkFunction:         5285,
	})
	db.Add("degenDopedSi", Metal, map[string]float64{
		PropRelativePermittivity: 1000,
		PropWorkFunction:         4050,
	})
	db.Add("NbTiN", Metal, map[string]float64{
		PropRelativePermittivity: 1000,
		// Not well characterized; aluminum's value is used as a stand-in.
		PropWorkFunction: 4280,
	})

	// Dielectrics. Permittivities from Robertson, EPJAP 28, 265 (2004);
	// ALD-grown films can deviate (Biercuk et al., APL 83, 2405 (2003)).
	db.Add("air", Dielectric, map[string]float64{PropRelativePermittivity: 1})
	db.Add("Si3N4", Dielectric, map[string]float64{PropRelativePermittivity: 7})
	db.Add("SiO2", Dielectric, map[string]float64{PropRelativePermittivity: 3.9})
	db.Add("HfO2", Dielectric, map[string]float64{PropRelativePermittivity: 25})
	db.Add("ZrO2", Dielectric, map[string]float64{PropRelativePermittivity: 25})
	db.Add("Al2O3", Dielectric, map[string]float64{PropRelativePermittivity: 9})

	// Semiconductors.
	db.Add("GaAs", Semi, map[string]float64{
		PropRelativePermittivity:   13.1,
		PropElectronAffinity:       4070,
		PropElectronMass:           0.067,
		PropDirectBandGap:          1519,
		PropValenceBandOffset:      -800,
		PropLuttingerGamma1:        6.98,
		PropLuttingerGamma2:        2.06,
		PropLuttingerGamma3:        2.93,
		PropSpinOrbitSplitting:     341,
		PropInterbandMatrixElement: 28800,
	})
	// AlAs has its global conduction band minimum at X; these are the
	// values for the local minimum at Gamma, suitable for interpolating
	// Al(x)Ga(1-x)As with x < 0.45.
	db.Add("AlAs", Semi, map[string]float64{
		PropRelativePermittivity:   12.90 - 2.84,
		PropElectronAffinity:       4070 - 1100,
		PropElectronMass:           0.15,
		PropDirectBandGap:          3099,
		PropValenceBandOffset:      -1330,
		PropLuttingerGamma1:        3.76,
		PropLuttingerGamma2:        0.82,
		PropLuttingerGamma3:        1.42,
		PropSpinOrbitSplitting:     280,
		PropInterbandMatrixElement: 21100,
	})
	db.Add("InAs", Semi, map[string]float64{
		PropRelativePermittivity:   15.15,
		PropElectronAffinity:       4900,
		PropElectronMass:           0.026,
		PropDirectBandGap:          417,
		PropValenceBandOffset:      -590,
		PropLuttingerGamma1:        20,
		PropLuttingerGamma2:        8.5,
		PropLuttingerGamma3:        9.2,
		PropSpinOrbitSplitting:     390,
		PropInterbandMatrixElement: 21500,
		// Heedt et al., Nanoscale 7, 18188 (2015).
		PropChargeNeutralityLevel: 417 + 160,
		PropSurfaceChargeDensity:  3e12,
	})
	db.Add("GaSb", Semi, map[string]float64{
		PropRelativePermittivity:   15.7,
		PropElectronAffinity:       4060,
		PropElectronMass:           0.039,
		PropDirectBandGap:          812,
		PropValenceBandOffset:      -30,
		PropLuttingerGamma1:        13.4,
		PropLuttingerGamma2:        4.7,
		PropLuttingerGamma3:        6.0,
		PropSpinOrbitSplitting:     760,
		PropInterbandMatrixElement: 27000,
	})
	db.Add("AlSb", Semi, map[string]float64{
		PropRelativePermittivity:   11,
		PropElectronMass:           0.14,
		PropDirectBandGap:          2386,
		PropValenceBandOffset:      -410,
		PropLuttingerGamma1:        5.18,
		PropLuttingerGamma2:        1.19,
		PropLuttingerGamma3:        1.97,
		PropSpinOrbitSplitting:     676,
		PropInterbandMatrixElement: 18700,
	})
	db.Add("InSb", Semi, map[string]float64{
		PropRelativePermittivity:   16.8,
		PropElectronAffinity:       4590,
		PropElectronMass:           0.0135,
		PropDirectBandGap:          235,
		PropValenceBandOffset:      0,
		PropLuttingerGamma1:        34.8,
		PropLuttingerGamma2:        15.5,
		PropLuttingerGamma3:        16.5,
		PropSpinOrbitSplitting:     810,
		PropInterbandMatrixElement: 23300,
		// Mid-gap surface states of density equal to InAs, pending
		// experimental determination.
		PropChargeNeutralityLevel: 0.5 * 235,
		PropSurfaceChargeDensity:  3e12,
	})
	db.Add("InP", Semi, map[string]float64{
		PropRelativePermittivity:   12.5,
		PropElectronAffinity:       4380,
		PropElectronMass:           0.0795,
		PropDirectBandGap:          1423.6,
		PropValenceBandOffset:      -940,
		PropLuttingerGamma1:        5.08,
		PropLuttingerGamma2:        1.60,
		PropLuttingerGamma3:        2.10,
		PropSpinOrbitSplitting:     108,
		PropInterbandMatrixElement: 20700,
	})
	db.Add("Si", Semi, map[string]float64{
		PropRelativePermittivity: 11.7,
		PropElectronAffinity:     4050,
		// Density-of-states electron mass, (0.98 + 2*0.19)^(1/3).
		PropElectronMass:       1.10793,
		PropDirectBandGap:      3480,
		PropLuttingerGamma1:    4.28,
		PropLuttingerGamma2:    0.339,
		PropLuttingerGamma3:    1.446,
		PropSpinOrbitSplitting: 44,
	})

	// Bowing parameters from Vurgaftman et al. (2001).
	db.SetBowing("GaAs", "InAs", Semi, map[string]float64{
		PropElectronMass:           0.0091,
		PropDirectBandGap:          477,
		PropValenceBandOffset:      -380,
		PropSpinOrbitSplitting:     150,
		PropInterbandMatrixElement: -1480,
	})
	db.SetBowing("AlAs", "GaAs", Semi, map[string]float64{
		PropElectronMass: 0,
	})
	db.SetBowing("AlAs", "InAs", Semi, map[string]float64{
		PropElectronMass:       0.049,
		PropDirectBandGap:      700,
		PropValenceBandOffset:  -640,
		PropSpinOrbitSplitting: 150,
	})
	db.SetBowing("GaSb", "InSb", Semi, map[string]float64{
		PropElectronMass:       0.0092,
		PropDirectBandGap:      425,
		PropSpinOrbitSplitting: 100,
	})
	db.SetBowing("InAs", "InSb", Semi, map[string]float64{
		PropElectronMass:       0.035,
		PropDirectBandGap:      670,
		PropSpinOrbitSplitting: 1200,
	})

	return db
}
