package nscp

import "math"

// NSCP 2015 elastic material constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Poisson's ratios used for shear modulus G = E / 2(1+ν)
	NuSteel    = 0.3
	NuConcrete = 0.2

	// Unit weights (kN/m³) for self-weight actions
	GammaSteel    = 77.0
	GammaConcrete = 24.0
)

// Ec calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1: Ec = 4700√f'c (MPa)
func Ec(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return 4700 * math.Sqrt(fc)
}

// ShearModulus returns G = E / 2(1+ν).
func ShearModulus(e, nu float64) float64 {
	return e / (2 * (1 + nu))
}
