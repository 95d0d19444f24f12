package service

import (
	"fmt"
	"slices"

	"github.com/hearthloan/prequal/internal/domain/valueobject"
)

// RuleInput is what every underwriting rule sees.
type RuleInput struct {
	CreditScore      int
	DTI              float64
	LTV              float64
	EmploymentStatus string
}

// Rule inspects the input and, when it fires, returns the status it demands
// and the condition to record. A rule that does not fire returns ok=false.
type Rule func(in RuleInput) (status valueobject.QualificationStatus, condition string, ok bool)

// Decision is the folded outcome of all rules.
type Decision struct {
	Status     valueobject.QualificationStatus
	Conditions []string
}

// DecisionResolver folds an ordered rule list over a status that starts at
// approved and can only worsen.
type DecisionResolver struct {
	rules []Rule
}

// NewDecisionResolver builds the standard rule chain: credit, DTI, LTV,
// employment. Condition order follows rule order.
func NewDecisionResolver(p Policy) *DecisionResolver {
	p = p.clone()
	return NewDecisionResolverWithRules(
		creditScoreRule(p.MinCreditScore, p.DocumentationScore),
		dtiRule(p.MaxDTI),
		ltvRule(p.MaxLTV),
		employmentRule(p.AcceptedEmployment),
	)
}

// NewDecisionResolverWithRules builds a resolver over an explicit rule chain.
func NewDecisionResolverWithRules(rules ...Rule) *DecisionResolver {
	return &DecisionResolver{rules: slices.Clone(rules)}
}

// Resolve runs every rule unconditionally, even after a denial.
func (r *DecisionResolver) Resolve(in RuleInput) Decision {
	d := Decision{Status: valueobject.QualificationApproved, Conditions: []string{}}
	for _, rule := range r.rules {
		status, condition, ok := rule(in)
		if !ok {
			continue
		}
		d.Status = d.Status.Worsen(status)
		if condition != "" {
			d.Conditions = append(d.Conditions, condition)
		}
	}
	return d
}

// ---------------------------------------------------------------------------
// Standard rules
// ---------------------------------------------------------------------------

func creditScoreRule(minimum, documentation int) Rule {
	denied := fmt.Sprintf("credit score below minimum requirement (%d)", minimum)
	return func(in RuleInput) (valueobject.QualificationStatus, string, bool) {
		switch {
		case in.CreditScore < minimum:
			return valueobject.QualificationDenied, denied, true
		case in.CreditScore < documentation:
			return valueobject.QualificationConditional, "credit score requires additional documentation", true
		default:
			return valueobject.QualificationStatus{}, "", false
		}
	}
}

func dtiRule(maxDTI float64) Rule {
	condition := fmt.Sprintf("debt-to-income ratio exceeds %s%% — may require compensating factors", formatLimit(maxDTI))
	return func(in RuleInput) (valueobject.QualificationStatus, string, bool) {
		if in.DTI > maxDTI {
			return valueobject.QualificationConditional, condition, true
		}
		return valueobject.QualificationStatus{}, "", false
	}
}

func ltvRule(maxLTV float64) Rule {
	return func(in RuleInput) (valueobject.QualificationStatus, string, bool) {
		if in.LTV > maxLTV {
			return valueobject.QualificationConditional, "high loan-to-value ratio — may require PMI or larger down payment", true
		}
		return valueobject.QualificationStatus{}, "", false
	}
}

func employmentRule(accepted []string) Rule {
	return func(in RuleInput) (valueobject.QualificationStatus, string, bool) {
		if slices.Contains(accepted, in.EmploymentStatus) {
			return valueobject.QualificationStatus{}, "", false
		}
		return valueobject.QualificationConditional, "employment verification required", true
	}
}

// formatLimit prints 43 as "43" and 43.5 as "43.5".
func formatLimit(v float64) string {
	return fmt.Sprintf("%g", v)
}
