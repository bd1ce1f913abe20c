package flexure

import (
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// designDoubly sizes compression steel when the singly-reinforced ductile
// maximum cannot carry the moment. Mu is in N·mm, dimensions in mm.
//
// As1 is fixed at the ductile tension maximum ρ_max·b·d; the remainder
// Mn2 = Mu/φ − Mn1 is carried by a steel couple at lever arm d − d'. When
// Mn2 ≤ 0 the section is actually sufficient singly reinforced, which is
// reported explicitly instead of forcing compression steel in.
func (e *Engine) designDoubly(mu, b, d float64) *DoublyReinforcedDesign {
	fc, fy := e.cfg.Fc, e.cfg.MainFy
	phi := e.cfg.PhiFlexure

	as1 := nscp.RhoMax(fc, fy) * b * d
	a1 := as1 * fy / (0.85 * fc * b)
	c1 := a1 / nscp.Beta1(fc)
	mn1 := as1 * fy * (d - a1/2)

	mnTotal := mu / phi
	mn2 := mnTotal - mn1

	res := &DoublyReinforcedDesign{
		As1:         as1,
		Mn1KNm:      mn1 / 1e6,
		Mn2KNm:      mn2 / 1e6,
		MnTotalKNm:  mnTotal / 1e6,
		StressBlock: a1,
		NeutralAxis: c1,
	}

	if mn2 <= 0 {
		res.SinglySufficient = true
		res.AsTotal = as1
		return res
	}

	// Compression steel at depth d' = cover + stirrup + half the smallest
	// candidate main bar.
	dPrime := e.cfg.Cover + e.cfg.StirrupDia() + nscp.SmallestBar(e.cfg.MainBars)/2
	res.DPrime = dPrime

	epsSc := nscp.EpsilonCU * (c1 - dPrime) / c1
	epsY := nscp.YieldStrain(fy)
	res.CompStrain = epsSc
	if epsSc >= epsY {
		res.CompYields = true
		res.CompStress = fy
	} else {
		res.CompStress = epsSc * nscp.Es
	}
	if res.CompStress <= 0 {
		// Neutral axis above the compression steel: the couple cannot
		// develop. Report the theoretical tension total and leave the
		// compression group unsized.
		res.AsTotal = as1
		return res
	}

	res.AscRequired = mn2 / (res.CompStress * (d - dPrime))
	res.As2 = res.AscRequired * res.CompStress / fy
	res.AsTotal = res.As1 + res.As2

	// The compression group still needs a constructible minimum.
	res.AscProvided = res.AscRequired
	if minComp := nscp.MinimumBarArea(e.cfg.MainBars, e.cfg.MinBars); minComp > res.AscRequired {
		res.AscProvided = minComp
		res.As2 = res.AscProvided * res.CompStress / fy
		res.AsTotal = res.As1 + res.As2
	}
	return res
}
