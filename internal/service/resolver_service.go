package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"taxsync/internal/model"
)

// ResolverService maps a product VAT rate back to a tax class
type ResolverService interface {
	ResolveClass(ctx context.Context, rate decimal.Decimal) (string, error)
	ListClasses(ctx context.Context) ([]string, error)
}

type resolverService struct {
	classes ClassListStore
	rates   RateStore
}

func NewResolverService(classes ClassListStore, rates RateStore) ResolverService {
	return &resolverService{classes: classes, rates: rates}
}

// ResolveClass returns the first class whose first rate equals rate exactly.
// Configured classes are tried in label order, then the standard class.
// When nothing matches the standard class ("") is returned.
func (s *resolverService) ResolveClass(ctx context.Context, rate decimal.Decimal) (string, error) {
	classes, err := s.ListClasses(ctx)
	if err != nil {
		return model.StandardClass, err
	}

	for _, class := range classes {
		rates, err := s.rates.ListByClass(ctx, model.ClassSlug(class))
		if err != nil {
			return model.StandardClass, fmt.Errorf("failed to list rates of class %q: %w", class, err)
		}
		if len(rates) == 0 {
			continue
		}
		first := rates[0].Rate
		if first.Valid && first.Decimal.Equal(rate) {
			return class, nil
		}
	}
	return model.StandardClass, nil
}

// ListClasses returns the configured labels sorted, followed by the standard class.
// Sorting makes resolution independent of the order labels were stored in.
func (s *resolverService) ListClasses(ctx context.Context) ([]string, error) {
	configured, err := s.classes.Classes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax classes: %w", err)
	}
	classes := make([]string, 0, len(configured)+1)
	classes = append(classes, configured...)
	sort.Strings(classes)
	return append(classes, model.StandardClass), nil
}
