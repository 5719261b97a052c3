package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionInsertTaxRate    = "INSERT_TAX_RATE"
	ActionUpdateTaxRate    = "UPDATE_TAX_RATE"
	ActionAppendTaxClasses = "APPEND_TAX_CLASSES"
)

// AuditLog tracks who changed which tax rate, and when
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);index" json:"actor"` // JWT subject, or "cli"
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Country    string    `gorm:"type:varchar(2);index" json:"country"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"` // tax_rate_id
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
