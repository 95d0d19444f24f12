package usecase

import (
	"context"
	"fmt"

	"github.com/hearthloan/prequal/internal/application/dto"
	"github.com/hearthloan/prequal/internal/domain/model"
	"github.com/hearthloan/prequal/internal/domain/port"
	"github.com/hearthloan/prequal/internal/domain/service"
)

// ListProductsUseCase lists the catalog, optionally matched to an applicant.
type ListProductsUseCase struct {
	catalog port.ProductCatalog
}

// NewListProductsUseCase wires dependencies.
func NewListProductsUseCase(catalog port.ProductCatalog) *ListProductsUseCase {
	return &ListProductsUseCase{catalog: catalog}
}

// Execute returns every product, or only matching ones with a payment
// estimate when the request carries a full eligibility context.
func (uc *ListProductsUseCase) Execute(ctx context.Context, req dto.ListProductsRequest) (dto.ProductListResponse, error) {
	products, err := uc.catalog.List(ctx)
	if err != nil {
		return dto.ProductListResponse{}, fmt.Errorf("list products: %w", err)
	}

	resp := dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	if req.CreditScore == nil || req.LoanAmount == nil || req.DownPayment == nil {
		for _, p := range products {
			resp.Products = append(resp.Products, toProductResponse(p))
		}
		return resp, nil
	}

	if !req.LoanAmount.IsPositive() || req.DownPayment.IsNegative() {
		return dto.ProductListResponse{}, fmt.Errorf("%w: loan_amount must be positive and down_payment non-negative", model.ErrValidation)
	}
	if err := model.CheckAmount("loan_amount", *req.LoanAmount); err != nil {
		return dto.ProductListResponse{}, err
	}
	if err := model.CheckAmount("down_payment", *req.DownPayment); err != nil {
		return dto.ProductListResponse{}, err
	}
	quotes := service.MatchProducts(products, model.Eligibility{
		CreditScore: *req.CreditScore,
		LoanAmount:  *req.LoanAmount,
		DownPayment: *req.DownPayment,
	})
	for _, q := range quotes {
		resp.Products = append(resp.Products, toQuotedProductResponse(q))
	}
	return resp, nil
}
