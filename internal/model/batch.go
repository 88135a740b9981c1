package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch lifecycle states. The state machine is strictly one-way:
// released → closed, exactly once.
const (
	BatchStatusReleased = "released"
	BatchStatusClosed   = "closed"
)

// ManufacturingBatch is a single production run against a recipe.
// ActualQuantity is only ever mutated by recording a YIELD transaction.
type ManufacturingBatch struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchNumber    string          `gorm:"uniqueIndex;not null"`
	RecipeID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TargetQuantity decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	ActualQuantity decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'released'"`
	StartDate      time.Time       `gorm:"not null"`
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Recipe       *Recipe            `gorm:"foreignKey:RecipeID"`
	Transactions []BatchTransaction `gorm:"foreignKey:BatchID"`
}
