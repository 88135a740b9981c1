package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormulaService manages formula headers and their ingredient lines.
type FormulaService interface {
	Create(ctx context.Context, req dto.CreateFormulaRequest) (*dto.FormulaResponse, error)
	List(ctx context.Context) (*dto.FormulaListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.FormulaResponse, error)
	// Explode previews requirements at a target size without releasing a batch.
	Explode(ctx context.Context, id uuid.UUID, req dto.ExplodeRequest) (*dto.ExplodeResponse, error)
}

type formulaService struct {
	repo      repository.FormulaRepository
	explosion ExplosionService
}

func NewFormulaService(repo repository.FormulaRepository, explosion ExplosionService) FormulaService {
	return &formulaService{repo: repo, explosion: explosion}
}

// Create validates every ingredient line before anything is persisted —
// a formula with an unusable loss factor must never reach the store.
func (s *formulaService) Create(ctx context.Context, req dto.CreateFormulaRequest) (*dto.FormulaResponse, error) {
	if req.TotalBatchSize.Sign() <= 0 {
		return nil, &InvalidConfigError{Reason: "total batch size must be positive"}
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &InvalidConfigError{Reason: "product_id is not a valid UUID"}
	}

	uom := req.UOM
	if uom == "" {
		uom = "kg"
	}

	formula := model.Formula{
		FormulaNumber:  req.FormulaNumber,
		Name:           req.Name,
		ProductID:      productID,
		TotalBatchSize: req.TotalBatchSize,
		UOM:            uom,
	}

	for i, line := range req.Ingredients {
		lineProductID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, &InvalidConfigError{Reason: fmt.Sprintf("ingredient %d: product_id is not a valid UUID", i)}
		}
		if line.LossFactor.Sign() < 0 || line.LossFactor.GreaterThanOrEqual(oneHundred) {
			return nil, &InvalidConfigError{Reason: fmt.Sprintf("ingredient %d: loss factor must be in [0, 100)", i)}
		}
		if line.Percentage != nil && line.Percentage.Sign() <= 0 {
			return nil, &InvalidConfigError{Reason: fmt.Sprintf("ingredient %d: percentage must be positive when set", i)}
		}
		if line.Percentage == nil && line.Quantity.Sign() <= 0 {
			return nil, &InvalidConfigError{Reason: fmt.Sprintf("ingredient %d: quantity must be positive in proportional mode", i)}
		}
		formula.Ingredients = append(formula.Ingredients, model.FormulaIngredient{
			ProductID:  lineProductID,
			Quantity:   line.Quantity,
			Percentage: line.Percentage,
			LossFactor: line.LossFactor,
		})
	}

	if err := s.repo.Create(ctx, &formula); err != nil {
		return nil, err
	}
	return formulaToResponse(&formula), nil
}

func (s *formulaService) List(ctx context.Context) (*dto.FormulaListResponse, error) {
	formulas, total, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.FormulaResponse, 0, len(formulas))
	for i := range formulas {
		data = append(data, *formulaToResponse(&formulas[i]))
	}
	return &dto.FormulaListResponse{Data: data, Total: total}, nil
}

func (s *formulaService) Get(ctx context.Context, id uuid.UUID) (*dto.FormulaResponse, error) {
	formula, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "formula", ID: id.String()}
		}
		return nil, err
	}
	return formulaToResponse(formula), nil
}

func (s *formulaService) Explode(ctx context.Context, id uuid.UUID, req dto.ExplodeRequest) (*dto.ExplodeResponse, error) {
	requirements, err := s.explosion.ComputeRequirements(ctx, id, req.Quantity)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequirementResponse, 0, len(requirements))
	for _, r := range requirements {
		out = append(out, dto.RequirementResponse{ProductID: r.ProductID.String(), Quantity: r.Quantity})
	}
	return &dto.ExplodeResponse{
		FormulaID:    id.String(),
		Quantity:     req.Quantity,
		Requirements: out,
	}, nil
}

func formulaToResponse(f *model.Formula) *dto.FormulaResponse {
	ingredients := make([]dto.FormulaIngredientResponse, 0, len(f.Ingredients))
	for _, line := range f.Ingredients {
		name := ""
		if line.Product != nil {
			name = line.Product.Name
		}
		ingredients = append(ingredients, dto.FormulaIngredientResponse{
			ID:         line.ID.String(),
			ProductID:  line.ProductID.String(),
			Product:    name,
			Quantity:   line.Quantity,
			Percentage: line.Percentage,
			LossFactor: line.LossFactor,
		})
	}
	return &dto.FormulaResponse{
		ID:             f.ID.String(),
		FormulaNumber:  f.FormulaNumber,
		Name:           f.Name,
		ProductID:      f.ProductID.String(),
		TotalBatchSize: f.TotalBatchSize,
		UOM:            f.UOM,
		Ingredients:    ingredients,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}
