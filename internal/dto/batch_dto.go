package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// BatchFilter is bound from the query string of GET /v1/batches.
type BatchFilter struct {
	Status string `form:"status"` // released | closed | all
	Limit  int    `form:"limit,default=50"  validate:"min=1,max=200"`
	Offset int    `form:"offset,default=0"  validate:"min=0"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReleaseBatchRequest struct {
	RecipeID string          `json:"recipe_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"  validate:"required,gt=0"`
}

type RecordYieldRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"required,gt=0"`
	Type      string          `json:"type"       validate:"required,oneof=YIELD LOSS BYPRODUCT"`
	LotNumber *string         `json:"lot_number"`
	// ParentLotID links the reported material to the upstream lot it came from
	ParentLotID *string `json:"parent_lot_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransactionResponse struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batch_id"`
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LotNumber   *string         `json:"lot_number"`
	ParentLotID *string         `json:"parent_lot_id"`
	CreatedAt   string          `json:"created_at"`
}

type BatchResponse struct {
	ID             string          `json:"id"`
	BatchNumber    string          `json:"batch_number"`
	RecipeID       string          `json:"recipe_id"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Status         string          `json:"status"`
	StartDate      string          `json:"start_date"`
	EndDate        *string         `json:"end_date"`
}

type BatchListResponse struct {
	Items  []BatchResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// CloseBatchResponse is the terminal, immutable record of a batch's outcome.
type CloseBatchResponse struct {
	BatchNumber     string          `json:"batch_number"`
	TargetQuantity  decimal.Decimal `json:"target_quantity"`
	ActualQuantity  decimal.Decimal `json:"actual_quantity"`
	Variance        decimal.Decimal `json:"variance"`
	YieldPercentage decimal.Decimal `json:"yield_percentage"`
}

// GenealogyResponse is the flattened single-hop trace for a lot number.
type GenealogyResponse struct {
	LotNumber    string                `json:"lot_number"`
	Transactions []TransactionResponse `json:"transactions"`
}
