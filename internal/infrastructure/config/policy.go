package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hearthloan/prequal/internal/domain/service"
)

// policyFile mirrors the YAML layout. Pointer fields distinguish "absent"
// from an explicit zero so a partial file only overrides what it names.
type policyFile struct {
	DefaultCreditScore *int     `yaml:"default_credit_score"`
	TermMonths         *int     `yaml:"term_months"`
	MinCreditScore     *int     `yaml:"min_credit_score"`
	DocumentationScore *int     `yaml:"documentation_score"`
	MaxDTI             *float64 `yaml:"max_dti"`
	MaxLTV             *float64 `yaml:"max_ltv"`
	DTICeiling         *float64 `yaml:"dti_ceiling"`
	FloorRate          *float64 `yaml:"floor_rate"`
	RateTiers          []struct {
		MinScore int     `yaml:"min_score"`
		Rate     float64 `yaml:"rate"`
	} `yaml:"rate_tiers"`
	LTVSurcharges []struct {
		Above float64 `yaml:"above"`
		Add   float64 `yaml:"add"`
	} `yaml:"ltv_surcharges"`
	AcceptedEmployment []string `yaml:"accepted_employment"`
}

// LoadPolicy returns the default policy, overridden by the YAML file at path
// when path is non-empty.
func LoadPolicy(path string) (service.Policy, error) {
	if path == "" {
		return service.DefaultPolicy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return service.Policy{}, fmt.Errorf("open policy file: %w", err)
	}
	defer f.Close()
	return ParsePolicy(f)
}

// ParsePolicy overlays a YAML document on the default policy and validates
// the result. Unknown keys are rejected.
func ParsePolicy(r io.Reader) (service.Policy, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return service.Policy{}, fmt.Errorf("read policy: %w", err)
	}

	var pf policyFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return service.Policy{}, fmt.Errorf("decode policy: %w", err)
	}

	p := service.DefaultPolicy()
	setIfPresent(&p.DefaultCreditScore, pf.DefaultCreditScore)
	setIfPresent(&p.TermMonths, pf.TermMonths)
	setIfPresent(&p.MinCreditScore, pf.MinCreditScore)
	setIfPresent(&p.DocumentationScore, pf.DocumentationScore)
	setIfPresent(&p.MaxDTI, pf.MaxDTI)
	setIfPresent(&p.MaxLTV, pf.MaxLTV)
	setIfPresent(&p.DTICeiling, pf.DTICeiling)
	setIfPresent(&p.FloorRate, pf.FloorRate)
	if pf.RateTiers != nil {
		p.RateTiers = make([]service.RateTier, 0, len(pf.RateTiers))
		for _, t := range pf.RateTiers {
			p.RateTiers = append(p.RateTiers, service.RateTier{MinScore: t.MinScore, Rate: t.Rate})
		}
	}
	if pf.LTVSurcharges != nil {
		p.LTVSurcharges = make([]service.LTVSurcharge, 0, len(pf.LTVSurcharges))
		for _, s := range pf.LTVSurcharges {
			p.LTVSurcharges = append(p.LTVSurcharges, service.LTVSurcharge{Above: s.Above, Add: s.Add})
		}
	}
	if pf.AcceptedEmployment != nil {
		p.AcceptedEmployment = pf.AcceptedEmployment
	}

	if err := p.Validate(); err != nil {
		return service.Policy{}, fmt.Errorf("invalid policy: %w", err)
	}
	return p, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
