package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is any material the engine touches: raw ingredients, finished
// goods, and byproducts all live in the same catalog.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductCode string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	UOM         string `gorm:"not null;default:'kg';column:uom"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
