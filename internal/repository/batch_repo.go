package repository

import (
	"context"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BatchRepository is the data access contract for batch headers.
// Mutating operations take a live *gorm.DB transaction: the service layer
// owns transaction boundaries (release atomicity, yield/close serialization).
type BatchRepository interface {
	CreateTx(tx *gorm.DB, b *model.ManufacturingBatch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ManufacturingBatch, error)
	// FindByIDForUpdate takes a row-level lock — serializes concurrent
	// yield recordings and close against the same batch.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ManufacturingBatch, error)
	List(ctx context.Context, filter dto.BatchFilter) ([]model.ManufacturingBatch, int64, error)
	// NextBatchNumber draws from a PostgreSQL sequence — unique under
	// concurrent releases.
	NextBatchNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	AddActualQuantityTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) error
	CloseTx(tx *gorm.DB, id uuid.UUID, endDate time.Time) error
	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) DB() *gorm.DB { return r.db }

func (r *batchRepo) CreateTx(tx *gorm.DB, b *model.ManufacturingBatch) error {
	return tx.Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ManufacturingBatch, error) {
	var b model.ManufacturingBatch
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *batchRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ManufacturingBatch, error) {
	var b model.ManufacturingBatch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	return &b, err
}

func (r *batchRepo) List(ctx context.Context, filter dto.BatchFilter) ([]model.ManufacturingBatch, int64, error) {
	var batches []model.ManufacturingBatch
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ManufacturingBatch{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("start_date DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&batches).Error
	return batches, total, err
}

func (r *batchRepo) NextBatchNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('batch_number_seq')").Scan(&num).Error
	return num, err
}

func (r *batchRepo) AddActualQuantityTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal) error {
	return tx.Model(&model.ManufacturingBatch{}).Where("id = ?", id).
		Update("actual_quantity", gorm.Expr("actual_quantity + ?", qty)).Error
}

func (r *batchRepo) CloseTx(tx *gorm.DB, id uuid.UUID, endDate time.Time) error {
	return tx.Model(&model.ManufacturingBatch{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   model.BatchStatusClosed,
		"end_date": endDate,
	}).Error
}
