package repository

import (
	"context"

	"batchforge/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormulaRepository is the data access contract for formula headers and
// their ingredient lines. Ingredient lines are owned by the formula and are
// always loaded with it.
type FormulaRepository interface {
	Create(ctx context.Context, f *model.Formula) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Formula, error)
	List(ctx context.Context) ([]model.Formula, int64, error)
}

type formulaRepo struct{ db *gorm.DB }

func NewFormulaRepository(db *gorm.DB) FormulaRepository { return &formulaRepo{db: db} }

func (r *formulaRepo) Create(ctx context.Context, f *model.Formula) error {
	// Header + ingredient lines in one statement — GORM cascades the association
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *formulaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Formula, error) {
	var f model.Formula
	err := r.db.WithContext(ctx).Preload("Ingredients").First(&f, id).Error
	return &f, err
}

func (r *formulaRepo) List(ctx context.Context) ([]model.Formula, int64, error) {
	var formulas []model.Formula
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Formula{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Ingredients").Order("formula_number ASC").Find(&formulas).Error
	return formulas, total, err
}
