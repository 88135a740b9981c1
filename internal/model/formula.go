package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Formula defines the ingredient proportions for producing a product.
// TotalBatchSize is the reference size that fixed-quantity ingredient lines
// scale against; it must be strictly positive.
type Formula struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FormulaNumber string    `gorm:"uniqueIndex;not null"`
	Name          string    `gorm:"index;not null"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	// TotalBatchSize is the reference batch size for proportional scaling
	TotalBatchSize decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	UOM            string          `gorm:"not null;default:'kg';column:uom"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Product     *Product            `gorm:"foreignKey:ProductID"`
	Ingredients []FormulaIngredient `gorm:"foreignKey:FormulaID;constraint:OnDelete:CASCADE"`
}

// FormulaIngredient is one input line of a formula. Exactly one scaling mode
// applies: when Percentage is non-nil the line is a fraction of the target
// batch size; otherwise Quantity scales linearly against TotalBatchSize.
// LossFactor is a percentage in [0, 100) used to inflate the issued quantity
// so the net requirement survives expected process shrinkage.
type FormulaIngredient struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FormulaID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal  `gorm:"type:decimal(14,4);not null;default:0"`
	Percentage *decimal.Decimal `gorm:"type:decimal(7,4)"`
	LossFactor decimal.Decimal  `gorm:"type:decimal(7,4);not null;default:0"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
