package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/service"
)

// MaxScheduleTermMonths bounds the size of a generated table.
const MaxScheduleTermMonths = 480

// maxRatePercent is the highest annual rate a schedule is built for.
var maxRatePercent = decimal.NewFromInt(100)

// AmortizationScheduleUseCase produces a month-by-month payment table.
type AmortizationScheduleUseCase struct {
	solver *service.AmortizationSolver
}

// NewAmortizationScheduleUseCase wires dependencies.
func NewAmortizationScheduleUseCase(solver *service.AmortizationSolver) *AmortizationScheduleUseCase {
	return &AmortizationScheduleUseCase{solver: solver}
}

// Execute builds the schedule. A zero term means the policy term.
func (uc *AmortizationScheduleUseCase) Execute(
	_ context.Context,
	req dto.ScheduleRequest,
) (dto.ScheduleResponse, error) {
	if !req.LoanAmount.IsPositive() {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: loan_amount must be greater than zero", model.ErrValidation)
	}
	if err := model.CheckAmount("loan_amount", req.LoanAmount); err != nil {
		return dto.ScheduleResponse{}, err
	}
	if req.Rate.IsNegative() || req.Rate.GreaterThan(maxRatePercent) {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: rate must be between 0 and %s", model.ErrValidation, maxRatePercent)
	}
	if req.TermMonths < 0 || req.TermMonths > MaxScheduleTermMonths {
		return dto.ScheduleResponse{}, fmt.Errorf("%w: term_months must be between 1 and %d", model.ErrValidation, MaxScheduleTermMonths)
	}

	term := req.TermMonths
	if term == 0 {
		term = uc.solver.TermMonths()
	}
	rate := req.Rate.InexactFloat64()
	entries := uc.solver.Schedule(req.LoanAmount, rate, term, time.Now().UTC())

	resp := dto.ScheduleResponse{
		MonthlyPayment: service.RoundMoney(service.PaymentForTerm(req.LoanAmount.InexactFloat64(), rate, term)),
		TermMonths:     term,
		TotalInterest:  decimal.Zero,
		TotalPaid:      decimal.Zero,
		Entries:        make([]dto.ScheduleEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.TotalInterest = resp.TotalInterest.Add(e.Interest)
		resp.TotalPaid = resp.TotalPaid.Add(e.Total)
		resp.Entries = append(resp.Entries, dto.ScheduleEntry{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return resp, nil
}
