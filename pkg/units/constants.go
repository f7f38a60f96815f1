package units

// Physical constants in SI units (CODATA 2018).
const (
	Hbar             = 1.054571817e-34  // J s
	Boltzmann        = 1.380649e-23     // J / K
	ElectronMass     = 9.1093837015e-31 // kg
	ElementaryCharge = 1.602176634e-19  // C
	BohrMagneton     = 9.2740100783e-24 // J / T
	Epsilon0         = 8.8541878128e-12 // F / m
	SpeedOfLight     = 299792458.0      // m / s
)

// BoltzmannEV is the Boltzmann constant in eV/K, the form used when working
// with band energies.
const BoltzmannEV = 8.617333262e-5
