package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ExplanationInput is everything the explanation text mentions.
type ExplanationInput struct {
	CreditScore      int
	DTI              float64
	LTV              float64
	EmploymentStatus string
	Status           string
	LoanAmount       float64
	Conditions       []string
}

// ExplanationGenerator renders a decision as applicant-facing text. It makes
// no decisions of its own.
type ExplanationGenerator struct {
	printer *message.Printer
}

func NewExplanationGenerator() *ExplanationGenerator {
	return &ExplanationGenerator{printer: message.NewPrinter(language.English)}
}

// Generate is deterministic for a given input.
func (g *ExplanationGenerator) Generate(in ExplanationInput) string {
	var b strings.Builder
	b.WriteString("Based on your financial profile:\n")
	fmt.Fprintf(&b, "- Credit Score: %d\n", in.CreditScore)
	fmt.Fprintf(&b, "- Debt-to-Income Ratio: %.1f%%\n", in.DTI)
	fmt.Fprintf(&b, "- Loan-to-Value Ratio: %.1f%%\n", in.LTV)
	fmt.Fprintf(&b, "- Employment Status: %s\n", in.EmploymentStatus)
	fmt.Fprintf(&b, "\nYou are %s for a mortgage of $%s.", in.Status, g.printer.Sprintf("%.2f", in.LoanAmount))

	if len(in.Conditions) > 0 {
		b.WriteString("\n\nConditions: ")
		b.WriteString(strings.Join(in.Conditions, ", "))
	}
	return b.String()
}
