package repository

import (
	"context"
	"strings"

	"taxsync/internal/model"
)

// ClassListStore reads and writes the configured tax class labels, kept as a
// single newline separated option value.
type ClassListStore struct {
	options OptionRepository
}

func NewClassListStore(options OptionRepository) *ClassListStore {
	return &ClassListStore{options: options}
}

// Get returns the raw option value
func (s *ClassListStore) Get(ctx context.Context) (string, error) {
	return s.options.Get(ctx, model.TaxClassesOption)
}

// Set overwrites the raw option value
func (s *ClassListStore) Set(ctx context.Context, value string) error {
	return s.options.Set(ctx, model.TaxClassesOption, value)
}

// Classes returns the configured labels in stored order, blank lines dropped.
// The standard class is implicit and never listed.
func (s *ClassListStore) Classes(ctx context.Context) ([]string, error) {
	raw, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return SplitClasses(raw), nil
}

// SplitClasses splits a newline separated class list
func SplitClasses(raw string) []string {
	var classes []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			classes = append(classes, line)
		}
	}
	return classes
}
