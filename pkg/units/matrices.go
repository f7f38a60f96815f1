package units

import "gonum.org/v1/gonum/mat"

// Pauli returns the Pauli matrix sigma_i for i in 0..3, with sigma_0 the
// 2x2 identity.
func Pauli(i int) *mat.CDense {
	m := mat.NewCDense(2, 2, nil)
	switch i {
	case 0:
		m.Set(0, 0, 1)
		m.Set(1, 1, 1)
	case 1:
		m.Set(0, 1, 1)
		m.Set(1, 0, 1)
	case 2:
		m.Set(0, 1, complex(0, -1))
		m.Set(1, 0, complex(0, 1))
	case 3:
		m.Set(0, 0, 1)
		m.Set(1, 1, -1)
	default:
		panic("units: Pauli index out of range")
	}
	return m
}

// Kron returns the Kronecker product of two complex matrices.
func Kron(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			s := a.At(i, j)
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, s*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Tau returns the 4x4 particle-hole matrix tau_{ij} = kron(sigma_i, sigma_j)
// used in Bogoliubov-de Gennes Hamiltonians.
func Tau(i, j int) *mat.CDense {
	return Kron(Pauli(i), Pauli(j))
}
