package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is an approved instantiation of a formula used for production.
// Batches are always released against a recipe, which fixes the formula.
// Status: "active" | "inactive"
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeNumber string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	FormulaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Formula *Formula `gorm:"foreignKey:FormulaID"`
}
