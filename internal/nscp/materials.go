package nscp

import (
	"math"
	"strconv"
	"strings"
)

// NSCP 2015 Material Constants

const (
	// Beta1 factors for equivalent rectangular stress block
	// Section 410.2.7.3
	Beta1Max = 0.85 // for f'c <= 28 MPa
	Beta1Min = 0.65 // minimum value, governs above 55 MPa

	// Strain limits
	EpsilonCU = 0.003 // Ultimate concrete strain (Section 410.2.2.1)

	// Strength reduction factors (Section 409.3.2)
	PhiFlexure = 0.90 // Tension-controlled sections
	PhiShear   = 0.75 // Shear
	PhiTorsion = 0.75 // Torsion

	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Absolute cap on the tension steel ratio regardless of ρ_balanced
	RhoCap = 0.025

	// Minimum acceptable curvature ductility index εcu/εy
	MinDuctilityIndex = 3.0

	// Maximum usable fraction of the balanced steel ratio
	MaxBalancedFraction = 0.75
)

// Beta1 calculates the factor for equivalent rectangular stress block.
// NSCP 2015 Section 410.2.7.3
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	// β1 = 0.85 - 0.05(f'c - 28)/7 for f'c > 28 MPa
	beta1 := Beta1Max - 0.05*(fc-28)/7
	return math.Max(beta1, Beta1Min)
}

// RhoMin calculates the minimum reinforcement ratio.
// NSCP 2015 Section 409.6.1.2
func RhoMin(fc, fy float64) float64 {
	// ρmin = max(0.25√f'c / fy, 1.4/fy)
	rho1 := 0.25 * math.Sqrt(fc) / fy
	rho2 := 1.4 / fy
	return math.Max(rho1, rho2)
}

// RhoBalanced calculates the balanced reinforcement ratio, the ratio at
// which concrete crushing and steel yielding occur simultaneously.
func RhoBalanced(fc, fy float64) float64 {
	return (0.85 * fc / fy) * (600 / (600 + fy))
}

// RhoMax calculates the maximum usable tension steel ratio:
// 75% of the balanced ratio, capped at the absolute limit of 0.025.
func RhoMax(fc, fy float64) float64 {
	return math.Min(MaxBalancedFraction*RhoBalanced(fc, fy), RhoCap)
}

// YieldStrain returns εy = fy/Es.
func YieldStrain(fy float64) float64 {
	return fy / Es
}

// ConcreteStrength extracts f'c (MPa) from a concrete grade designation
// such as "C28" or "c35". Unrecognized grades fall back to 28 MPa.
func ConcreteStrength(grade string) float64 {
	s := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(grade)), "C")
	fc, err := strconv.ParseFloat(s, 64)
	if err != nil || fc <= 0 {
		return 28
	}
	return fc
}
