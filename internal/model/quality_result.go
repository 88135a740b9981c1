package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QualityResult is one measured parameter of an inspection. Results are
// replaced as a whole set per inspection (delete-then-insert); there is no
// per-field update path.
type QualityResult struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InspectionID  string          `gorm:"index;not null"`
	ParameterName string          `gorm:"not null"`
	Value         decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	UOM           string          `gorm:"column:uom"`
	Passed        bool            `gorm:"not null"`
	CreatedAt     time.Time
}
