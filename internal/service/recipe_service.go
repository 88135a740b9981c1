package service

import (
	"context"
	"errors"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error)
	List(ctx context.Context) (*dto.RecipeListResponse, error)
}

type recipeService struct {
	repo        repository.RecipeRepository
	formulaRepo repository.FormulaRepository
}

func NewRecipeService(repo repository.RecipeRepository, formulaRepo repository.FormulaRepository) RecipeService {
	return &recipeService{repo: repo, formulaRepo: formulaRepo}
}

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	formulaID, err := uuid.Parse(req.FormulaID)
	if err != nil {
		return nil, &InvalidConfigError{Reason: "formula_id is not a valid UUID"}
	}

	// A recipe must point at an existing formula
	if _, err := s.formulaRepo.FindByID(ctx, formulaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "formula", ID: req.FormulaID}
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	recipe := model.Recipe{
		RecipeNumber: req.RecipeNumber,
		Name:         req.Name,
		FormulaID:    formulaID,
		Status:       status,
	}
	if err := s.repo.Create(ctx, &recipe); err != nil {
		return nil, err
	}
	return recipeToResponse(&recipe), nil
}

func (s *recipeService) List(ctx context.Context) (*dto.RecipeListResponse, error) {
	recipes, total, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		data = append(data, *recipeToResponse(&recipes[i]))
	}
	return &dto.RecipeListResponse{Data: data, Total: total}, nil
}

func recipeToResponse(r *model.Recipe) *dto.RecipeResponse {
	return &dto.RecipeResponse{
		ID:           r.ID.String(),
		RecipeNumber: r.RecipeNumber,
		Name:         r.Name,
		FormulaID:    r.FormulaID.String(),
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
