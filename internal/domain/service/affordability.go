package service

import "math"

// AffordabilityMetrics are the ratios the decision rules run on. Values are
// unrounded percentages.
type AffordabilityMetrics struct {
	MonthlyIncome float64
	DTI           float64
	LTV           float64
}

// worstRatio is reported when a ratio's denominator is zero or the ratio
// overflows.
const worstRatio = 100.0

// ComputeAffordability derives DTI and LTV. Property value is reconstructed
// as loan + down payment. It never fails: degenerate inputs map to 100%.
func ComputeAffordability(loanAmount, downPayment, annualIncome, monthlyDebts float64) AffordabilityMetrics {
	monthlyIncome := annualIncome / 12

	dti := worstRatio
	if monthlyIncome > 0 {
		dti = monthlyDebts / monthlyIncome * 100
	}

	ltv := worstRatio
	if propertyValue := loanAmount + downPayment; propertyValue > 0 {
		ltv = loanAmount / propertyValue * 100
	}

	return AffordabilityMetrics{MonthlyIncome: monthlyIncome, DTI: finiteOr(dti, worstRatio), LTV: finiteOr(ltv, worstRatio)}
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
