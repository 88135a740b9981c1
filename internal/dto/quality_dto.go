package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type QualityResultRequest struct {
	ParameterName string          `json:"parameter_name" validate:"required,min=1,max=120"`
	Value         decimal.Decimal `json:"value"          validate:"required"`
	UOM           string          `json:"uom"`
	Passed        bool            `json:"passed"`
}

// SaveQualityResultsRequest replaces the whole result set of an inspection.
type SaveQualityResultsRequest struct {
	Results []QualityResultRequest `json:"results" validate:"required,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type QualityResultResponse struct {
	ID            string          `json:"id"`
	InspectionID  string          `json:"inspection_id"`
	ParameterName string          `json:"parameter_name"`
	Value         decimal.Decimal `json:"value"`
	UOM           string          `json:"uom"`
	Passed        bool            `json:"passed"`
	CreatedAt     string          `json:"created_at"`
}

type QualityResultListResponse struct {
	InspectionID string                  `json:"inspection_id"`
	Results      []QualityResultResponse `json:"results"`
}
