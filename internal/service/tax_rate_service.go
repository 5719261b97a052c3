package service

import (
	"context"
	"fmt"

	"taxsync/internal/model"
)

type TaxRateResponse struct {
	ID       uint   `json:"id"`
	Country  string `json:"country"`
	Rate     string `json:"rate"`
	Name     string `json:"name"`
	Priority *int   `json:"priority"`
	Order    *int   `json:"order"`
	Class    string `json:"class"`
}

// TaxRateLister is the read side of the rate table used by the admin API
type TaxRateLister interface {
	List(ctx context.Context, page, limit int) ([]model.TaxRate, int64, error)
}

type TaxRateService interface {
	GetTaxRates(ctx context.Context, page, limit int) ([]TaxRateResponse, int64, error)
}

type taxRateService struct {
	rates TaxRateLister
}

func NewTaxRateService(rates TaxRateLister) TaxRateService {
	return &taxRateService{rates: rates}
}

func (s *taxRateService) GetTaxRates(ctx context.Context, page, limit int) ([]TaxRateResponse, int64, error) {
	rates, total, err := s.rates.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax rates: %w", err)
	}

	res := make([]TaxRateResponse, 0, len(rates))
	for _, r := range rates {
		res = append(res, toTaxRateResponse(r))
	}
	return res, total, nil
}

func toTaxRateResponse(r model.TaxRate) TaxRateResponse {
	return TaxRateResponse{
		ID:       r.ID,
		Country:  r.Country,
		Rate:     formatRate(r.RateFields),
		Name:     r.Name,
		Priority: r.Priority,
		Order:    r.Order,
		Class:    r.Class,
	}
}
