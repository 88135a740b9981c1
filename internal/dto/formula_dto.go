package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type FormulaIngredientRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"min=0"`
	// Percentage present ⇒ percentage mode; absent ⇒ proportional mode
	Percentage *decimal.Decimal `json:"percentage"`
	LossFactor decimal.Decimal  `json:"loss_factor" validate:"min=0"`
}

type CreateFormulaRequest struct {
	FormulaNumber  string                     `json:"formula_number"   validate:"required,min=2,max=40"`
	Name           string                     `json:"name"             validate:"required,min=2,max=120"`
	ProductID      string                     `json:"product_id"       validate:"required,uuid"`
	TotalBatchSize decimal.Decimal            `json:"total_batch_size" validate:"required,gt=0"`
	UOM            string                     `json:"uom"`
	Ingredients    []FormulaIngredientRequest `json:"ingredients"      validate:"dive"`
}

// ExplodeRequest is the dry-run explosion body for POST /v1/formulas/:id/explode.
type ExplodeRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FormulaIngredientResponse struct {
	ID         string           `json:"id"`
	ProductID  string           `json:"product_id"`
	Product    string           `json:"product,omitempty"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Percentage *decimal.Decimal `json:"percentage"`
	LossFactor decimal.Decimal  `json:"loss_factor"`
}

type FormulaResponse struct {
	ID             string                      `json:"id"`
	FormulaNumber  string                      `json:"formula_number"`
	Name           string                      `json:"name"`
	ProductID      string                      `json:"product_id"`
	TotalBatchSize decimal.Decimal             `json:"total_batch_size"`
	UOM            string                      `json:"uom"`
	Ingredients    []FormulaIngredientResponse `json:"ingredients"`
	CreatedAt      string                      `json:"created_at"`
}

type FormulaListResponse struct {
	Data  []FormulaResponse `json:"data"`
	Total int64             `json:"total"`
}

// RequirementResponse is one exploded ingredient requirement.
type RequirementResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type ExplodeResponse struct {
	FormulaID    string                `json:"formula_id"`
	Quantity     decimal.Decimal       `json:"quantity"`
	Requirements []RequirementResponse `json:"requirements"`
}
