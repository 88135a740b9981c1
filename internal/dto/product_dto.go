package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	ProductCode string  `json:"product_code" validate:"required,min=2,max=40"`
	Name        string  `json:"name"         validate:"required,min=2,max=120"`
	Description *string `json:"description"`
	UOM         string  `json:"uom"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string  `json:"id"`
	ProductCode string  `json:"product_code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UOM         string  `json:"uom"`
	Active      bool    `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
}
