package service

// RateEstimator maps credit score and LTV to an annual rate in percent.
type RateEstimator struct {
	tiers      []RateTier
	floor      float64
	surcharges []LTVSurcharge
}

func NewRateEstimator(p Policy) *RateEstimator {
	p = p.clone()
	return &RateEstimator{tiers: p.RateTiers, floor: p.FloorRate, surcharges: p.LTVSurcharges}
}

// Estimate returns the base rate of the highest tier the score reaches plus
// every LTV surcharge whose threshold is exceeded. There is no cap.
func (e *RateEstimator) Estimate(creditScore int, ltv float64) float64 {
	rate := e.floor
	for _, tier := range e.tiers {
		if creditScore >= tier.MinScore {
			rate = tier.Rate
			break
		}
	}
	for _, s := range e.surcharges {
		if ltv > s.Above {
			rate += s.Add
		}
	}
	return rate
}
