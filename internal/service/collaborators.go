package service

import (
	"context"

	"taxsync/internal/model"
)

// DeclarationLoader returns the declared rates of a two letter country code
type DeclarationLoader interface {
	Load(country string) ([]model.DeclaredRate, error)
}

// RateStore is the shop's persisted rate table
type RateStore interface {
	ListByClass(ctx context.Context, class string) ([]model.TaxRate, error)
	ListAll(ctx context.Context) ([]model.TaxRate, error)
	Insert(ctx context.Context, rate model.RateFields) (uint, error)
	Update(ctx context.Context, id uint, rate model.RateFields) (int64, error)
}

// ClassListStore is the newline separated list of configured class labels
type ClassListStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
	Classes(ctx context.Context) ([]string, error)
}

// TxRunner runs fn inside a database transaction
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// AuditLogger records who changed what
type AuditLogger interface {
	Log(ctx context.Context, entry *model.AuditLog) error
}

// Event is pushed to listeners whenever reconciliation writes a rate
type Event struct {
	Type    string   `json:"type"`
	Country string   `json:"country"`
	Class   string   `json:"class"`
	RateID  uint     `json:"rate_id,omitempty"`
	Rate    string   `json:"rate,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Event types
const (
	EventRateInserted = "tax_rate.inserted"
	EventRateUpdated  = "tax_rate.updated"
	EventRateFailed   = "tax_rate.failed"
	EventClassesSaved = "tax_classes.saved"
)

// Notifier receives reconciliation events. It must not block.
type Notifier interface {
	Notify(event Event)
}
