package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateRecipeRequest struct {
	RecipeNumber string `json:"recipe_number" validate:"required,min=2,max=40"`
	Name         string `json:"name"          validate:"required,min=2,max=120"`
	FormulaID    string `json:"formula_id"    validate:"required,uuid"`
	Status       string `json:"status"        validate:"omitempty,oneof=active inactive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecipeResponse struct {
	ID           string `json:"id"`
	RecipeNumber string `json:"recipe_number"`
	Name         string `json:"name"`
	FormulaID    string `json:"formula_id"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type RecipeListResponse struct {
	Data  []RecipeResponse `json:"data"`
	Total int64            `json:"total"`
}
