package service

import (
	"context"
	"errors"
	"fmt"

	"batchforge/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// requirementScale is the fixed precision of exploded quantities. Everything
// that reaches the ledger is rounded here to keep stored quantities drift-free.
const requirementScale = 4

var oneHundred = decimal.NewFromInt(100)

// Requirement is one exploded ingredient demand: gross quantity to issue so
// that the net requirement survives the expected process loss.
type Requirement struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// ExplosionService computes ingredient requirements for a formula at a given
// target batch size. Pure read — no side effects.
type ExplosionService interface {
	ComputeRequirements(ctx context.Context, formulaID uuid.UUID, targetBatchSize decimal.Decimal) ([]Requirement, error)
}

type explosionService struct {
	formulaRepo repository.FormulaRepository
}

func NewExplosionService(formulaRepo repository.FormulaRepository) ExplosionService {
	return &explosionService{formulaRepo: formulaRepo}
}

// ComputeRequirements applies, per ingredient line:
//
//  1. percentage mode:   raw = target × percentage / 100
//  2. proportional mode: raw = (target / formula.totalBatchSize) × line.quantity
//  3. loss inversion:    final = raw / (1 − lossFactor/100)
//
// A formula with zero ingredient lines yields an empty slice, not an error.
func (s *explosionService) ComputeRequirements(ctx context.Context, formulaID uuid.UUID, targetBatchSize decimal.Decimal) ([]Requirement, error) {
	if targetBatchSize.Sign() <= 0 {
		return nil, &InvalidConfigError{Reason: "target batch size must be positive"}
	}

	formula, err := s.formulaRepo.FindByID(ctx, formulaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "formula", ID: formulaID.String()}
		}
		return nil, err
	}
	if formula.TotalBatchSize.Sign() <= 0 {
		return nil, &InvalidConfigError{Reason: fmt.Sprintf("formula %s has non-positive total batch size", formula.FormulaNumber)}
	}

	requirements := make([]Requirement, 0, len(formula.Ingredients))
	for _, line := range formula.Ingredients {
		if line.LossFactor.Sign() < 0 || line.LossFactor.GreaterThanOrEqual(oneHundred) {
			return nil, &InvalidConfigError{
				Reason: fmt.Sprintf("ingredient %s: loss factor %s out of range [0, 100)", line.ProductID, line.LossFactor),
			}
		}

		var raw decimal.Decimal
		if line.Percentage != nil {
			raw = targetBatchSize.Mul(*line.Percentage).Div(oneHundred)
		} else {
			raw = targetBatchSize.Div(formula.TotalBatchSize).Mul(line.Quantity)
		}

		// Gross-up: issue enough that the net requirement remains after shrinkage
		denominator := decimal.NewFromInt(1).Sub(line.LossFactor.Div(oneHundred))
		final := raw.Div(denominator).Round(requirementScale)

		requirements = append(requirements, Requirement{
			ProductID: line.ProductID,
			Quantity:  final,
		})
	}
	return requirements, nil
}
