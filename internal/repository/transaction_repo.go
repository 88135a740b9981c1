package repository

import (
	"context"

	"batchforge/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository is the data access contract for the append-only
// batch ledger. There is deliberately no update or delete method.
type TransactionRepository interface {
	CreateTx(tx *gorm.DB, t *model.BatchTransaction) error
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]model.BatchTransaction, error)
	ListByLot(ctx context.Context, lotNumber string) ([]model.BatchTransaction, error)
	ListByLots(ctx context.Context, lotNumbers []string) ([]model.BatchTransaction, error)
	ListByParentLot(ctx context.Context, lotNumber string) ([]model.BatchTransaction, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.BatchTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]model.BatchTransaction, error) {
	var txs []model.BatchTransaction
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListByLot(ctx context.Context, lotNumber string) ([]model.BatchTransaction, error) {
	var txs []model.BatchTransaction
	err := r.db.WithContext(ctx).
		Where("lot_number = ?", lotNumber).
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListByLots(ctx context.Context, lotNumbers []string) ([]model.BatchTransaction, error) {
	if len(lotNumbers) == 0 {
		return nil, nil
	}
	var txs []model.BatchTransaction
	err := r.db.WithContext(ctx).
		Where("lot_number IN ?", lotNumbers).
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListByParentLot(ctx context.Context, lotNumber string) ([]model.BatchTransaction, error) {
	var txs []model.BatchTransaction
	err := r.db.WithContext(ctx).
		Where("parent_lot_id = ?", lotNumber).
		Find(&txs).Error
	return txs, err
}
