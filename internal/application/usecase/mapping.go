package usecase

import (
	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/service"
)

func toPreQualificationResponse(p model.PreQualification) dto.PreQualificationResponse {
	r := p.Result()
	conditions := r.Conditions
	if conditions == nil {
		conditions = []string{}
	}
	return dto.PreQualificationResponse{
		ID:             p.ID(),
		UserID:         p.UserID(),
		LoanAmount:     p.LoanAmount(),
		DownPayment:    p.DownPayment(),
		CreditScore:    r.CreditScore,
		DTI:            r.DTI,
		LTV:            r.LTV,
		Status:         r.Status.String(),
		MaxLoanAmount:  r.MaxLoanAmount,
		EstimatedRate:  r.EstimatedRate,
		MonthlyPayment: r.MonthlyPayment,
		Conditions:     conditions,
		Explanation:    r.Explanation,
		CreatedAt:      p.CreatedAt(),
	}
}

func toProfileResponse(p model.Profile) dto.ProfileResponse {
	s := p.Snapshot()
	return dto.ProfileResponse{
		ID:               s.ID,
		UserID:           s.UserID,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		DOB:              s.DOB,
		SSNLast4:         s.SSNLast4,
		Address:          s.Address,
		EmploymentStatus: s.EmploymentStatus,
		EmployerName:     s.EmployerName,
		AnnualIncome:     s.AnnualIncome,
		MonthlyIncome:    s.MonthlyIncome,
		Assets:           s.Assets,
		Liabilities:      s.Liabilities,
		CreditScore:      s.CreditScore,
		KYCStatus:        s.KYCStatus.String(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toApplicationResponse(app model.Application) dto.ApplicationResponse {
	s := app.Snapshot()
	return dto.ApplicationResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		LoanAmount:      s.LoanAmount,
		LoanType:        s.LoanType,
		PropertyAddress: s.PropertyAddress,
		PropertyValue:   s.PropertyValue,
		DownPayment:     s.DownPayment,
		Purpose:         s.Purpose.String(),
		Status:          s.Status.String(),
		SubmittedAt:     s.SubmittedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		LenderName:     p.LenderName,
		LoanType:       p.LoanType,
		Rate:           p.Rate,
		APR:            p.APR,
		Term:           p.TermMonths,
		Fees:           p.Fees,
		MinCreditScore: p.MinCreditScore,
		MinDownPayment: p.MinDownPayment,
		MaxLoanAmount:  p.MaxLoanAmount,
		Features:       p.Features,
	}
}

func toQuotedProductResponse(q service.ProductQuote) dto.ProductResponse {
	resp := toProductResponse(q.Product)
	payment := q.MonthlyPayment
	resp.EstimatedMonthlyPayment = &payment
	return resp
}
