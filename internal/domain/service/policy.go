package service

import (
	"errors"
	"fmt"
	"slices"
)

// RateTier maps a minimum credit score to a base annual rate in percent.
type RateTier struct {
	MinScore int
	Rate     float64
}

// LTVSurcharge adds Add percentage points when LTV is strictly above Above.
type LTVSurcharge struct {
	Above float64
	Add   float64
}

// Policy is the underwriting policy table. Treat it as immutable once handed
// to an engine; NewPreQualificationEngine takes its own copy.
type Policy struct {
	// DefaultCreditScore is used when neither the caller nor the profile
	// supplies a score.
	DefaultCreditScore int
	// TermMonths is the amortization term used for payment and max loan.
	TermMonths int

	MinCreditScore     int
	DocumentationScore int
	// MaxDTI and MaxLTV are percentages; values strictly above escalate.
	MaxDTI float64
	MaxLTV float64
	// DTICeiling is the fraction of monthly income that may go to debt
	// service when solving for the maximum loan.
	DTICeiling float64

	// RateTiers are ordered by MinScore, highest first.
	RateTiers     []RateTier
	FloorRate     float64
	LTVSurcharges []LTVSurcharge

	AcceptedEmployment []string
}

// DefaultPolicy returns the standard 30-year conforming policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultCreditScore: 680,
		TermMonths:         360,
		MinCreditScore:     620,
		DocumentationScore: 680,
		MaxDTI:             43,
		MaxLTV:             97,
		DTICeiling:         0.43,
		RateTiers: []RateTier{
			{MinScore: 760, Rate: 5.75},
			{MinScore: 700, Rate: 6.00},
			{MinScore: 680, Rate: 6.25},
		},
		FloorRate: 6.50,
		LTVSurcharges: []LTVSurcharge{
			{Above: 80, Add: 0.25},
			{Above: 90, Add: 0.25},
		},
		AcceptedEmployment: []string{"employed", "self-employed"},
	}
}

// Validate checks the table is internally consistent.
func (p Policy) Validate() error {
	var errs []error
	if p.DefaultCreditScore <= 0 {
		errs = append(errs, errors.New("default credit score must be positive"))
	}
	if p.TermMonths <= 0 {
		errs = append(errs, errors.New("term months must be positive"))
	}
	if p.DocumentationScore < p.MinCreditScore {
		errs = append(errs, errors.New("documentation score must not be below the minimum credit score"))
	}
	if p.MaxDTI <= 0 || p.MaxLTV <= 0 {
		errs = append(errs, errors.New("DTI and LTV limits must be positive"))
	}
	if p.DTICeiling <= 0 || p.DTICeiling > 1 {
		errs = append(errs, fmt.Errorf("DTI ceiling %.4f must be in (0, 1]", p.DTICeiling))
	}
	if p.FloorRate < 0 {
		errs = append(errs, errors.New("floor rate must not be negative"))
	}
	for i := 1; i < len(p.RateTiers); i++ {
		if p.RateTiers[i].MinScore >= p.RateTiers[i-1].MinScore {
			errs = append(errs, errors.New("rate tiers must be ordered by descending minimum score"))
			break
		}
	}
	if len(p.AcceptedEmployment) == 0 {
		errs = append(errs, errors.New("at least one accepted employment status is required"))
	}
	return errors.Join(errs...)
}

// ResolveCreditScore picks the authoritative score: caller override, then the
// stored profile score, then the policy default. Non-positive scores count
// as absent.
func (p Policy) ResolveCreditScore(override, stored *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	if stored != nil && *stored > 0 {
		return *stored
	}
	return p.DefaultCreditScore
}

func (p Policy) clone() Policy {
	c := p
	c.RateTiers = slices.Clone(p.RateTiers)
	c.LTVSurcharges = slices.Clone(p.LTVSurcharges)
	c.AcceptedEmployment = slices.Clone(p.AcceptedEmployment)
	return c
}
