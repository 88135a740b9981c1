package repository

import (
	"context"

	"batchforge/internal/model"

	"gorm.io/gorm"
)

// QualityRepository persists inspection results. Replace is the only write
// path: the whole result set of an inspection is swapped atomically.
type QualityRepository interface {
	ListByInspection(ctx context.Context, inspectionID string) ([]model.QualityResult, error)
	// Replace deletes all prior results for the inspection and inserts the
	// supplied set in one transaction.
	Replace(ctx context.Context, inspectionID string, results []model.QualityResult) error
}

type qualityRepo struct{ db *gorm.DB }

func NewQualityRepository(db *gorm.DB) QualityRepository { return &qualityRepo{db: db} }

func (r *qualityRepo) ListByInspection(ctx context.Context, inspectionID string) ([]model.QualityResult, error) {
	var results []model.QualityResult
	err := r.db.WithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}

func (r *qualityRepo) Replace(ctx context.Context, inspectionID string, results []model.QualityResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inspection_id = ?", inspectionID).
			Delete(&model.QualityResult{}).Error; err != nil {
			return err
		}
		for i := range results {
			results[i].InspectionID = inspectionID
		}
		if len(results) == 0 {
			return nil
		}
		return tx.Create(&results).Error
	})
}
