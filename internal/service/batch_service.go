package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"
	"batchforge/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BatchService drives the batch lifecycle: released → closed, exactly once.
type BatchService interface {
	ReleaseBatch(ctx context.Context, req dto.ReleaseBatchRequest) (*dto.BatchResponse, error)
	RecordYield(ctx context.Context, batchID uuid.UUID, req dto.RecordYieldRequest) (*dto.TransactionResponse, error)
	CloseBatch(ctx context.Context, batchID uuid.UUID) (*dto.CloseBatchResponse, error)
	ListBatches(ctx context.Context, filter dto.BatchFilter) (*dto.BatchListResponse, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error)
	ListTransactions(ctx context.Context, batchID uuid.UUID) ([]dto.TransactionResponse, error)
}

type batchService struct {
	repo       repository.BatchRepository
	txRepo     repository.TransactionRepository
	recipeRepo repository.RecipeRepository
	explosion  ExplosionService
	dispatcher *worker.Dispatcher
}

func NewBatchService(
	repo repository.BatchRepository,
	txRepo repository.TransactionRepository,
	recipeRepo repository.RecipeRepository,
	explosion ExplosionService,
	dispatcher *worker.Dispatcher,
) BatchService {
	return &batchService{
		repo:       repo,
		txRepo:     txRepo,
		recipeRepo: recipeRepo,
		explosion:  explosion,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ReleaseBatch ─────────────────────────────────────────────────────────────
// Resolves the recipe's formula, explodes requirements (pre-flight, outside
// the TX), then writes the batch header plus one FEED transaction per
// requirement atomically. A batch never exists without its feed lines.

func (s *batchService) ReleaseBatch(ctx context.Context, req dto.ReleaseBatchRequest) (*dto.BatchResponse, error) {
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, &InvalidConfigError{Reason: "recipe_id is not a valid UUID"}
	}
	if req.Quantity.Sign() <= 0 {
		return nil, &InvalidConfigError{Reason: "target quantity must be positive"}
	}

	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "recipe", ID: req.RecipeID}
		}
		return nil, err
	}

	requirements, err := s.explosion.ComputeRequirements(ctx, recipe.FormulaID, req.Quantity)
	if err != nil {
		return nil, err
	}

	var batch model.ManufacturingBatch
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextBatchNumber(ctx, tx)
		if err != nil {
			return err
		}

		batch = model.ManufacturingBatch{
			BatchNumber:    fmt.Sprintf("B-%08d", seq),
			RecipeID:       recipe.ID,
			TargetQuantity: req.Quantity,
			ActualQuantity: decimal.Zero,
			Status:         model.BatchStatusReleased,
			StartDate:      time.Now().UTC(),
		}
		if err := s.repo.CreateTx(tx, &batch); err != nil {
			return err
		}

		for _, r := range requirements {
			feed := &model.BatchTransaction{
				BatchID:   batch.ID,
				Type:      model.TxFeed,
				ProductID: r.ProductID,
				Quantity:  r.Quantity,
			}
			if err := s.txRepo.CreateTx(tx, feed); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return batchToResponse(&batch), nil
}

// ── RecordYield ──────────────────────────────────────────────────────────────
// Appends a YIELD/LOSS/BYPRODUCT ledger entry. The batch row is locked for
// the duration so concurrent recordings serialize and actual_quantity never
// loses an update. Recording against a closed batch is rejected.

func (s *batchService) RecordYield(ctx context.Context, batchID uuid.UUID, req dto.RecordYieldRequest) (*dto.TransactionResponse, error) {
	txType := model.TransactionType(req.Type)
	if !txType.Valid() || txType == model.TxFeed {
		return nil, &InvalidConfigError{Reason: fmt.Sprintf("transaction type %q not allowed for production reporting", req.Type)}
	}
	if req.Quantity.Sign() <= 0 {
		return nil, &InvalidConfigError{Reason: "quantity must be positive"}
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &InvalidConfigError{Reason: "product_id is not a valid UUID"}
	}

	var entry model.BatchTransaction
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		batch, err := s.repo.FindByIDForUpdate(tx, batchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "batch", ID: batchID.String()}
			}
			return err
		}
		if batch.Status != model.BatchStatusReleased {
			return &InvalidStateError{BatchNumber: batch.BatchNumber, Status: batch.Status, Op: "record production on"}
		}

		entry = model.BatchTransaction{
			BatchID:     batch.ID,
			Type:        txType,
			ProductID:   productID,
			Quantity:    req.Quantity,
			LotNumber:   req.LotNumber,
			ParentLotID: req.ParentLotID,
		}
		if err := s.txRepo.CreateTx(tx, &entry); err != nil {
			return err
		}

		if txType == model.TxYield {
			return s.repo.AddActualQuantityTx(tx, batch.ID, req.Quantity)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := transactionToResponse(&entry)
	return &resp, nil
}

// ── CloseBatch ───────────────────────────────────────────────────────────────
// Terminal transition. The row lock guarantees the variance snapshot sees a
// consistent actual_quantity even with an in-flight RecordYield. Re-closing
// fails — closing is not idempotent.

func (s *batchService) CloseBatch(ctx context.Context, batchID uuid.UUID) (*dto.CloseBatchResponse, error) {
	var summary dto.CloseBatchResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		batch, err := s.repo.FindByIDForUpdate(tx, batchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "batch", ID: batchID.String()}
			}
			return err
		}
		if batch.Status != model.BatchStatusReleased {
			return &InvalidStateError{BatchNumber: batch.BatchNumber, Status: batch.Status, Op: "close"}
		}

		if err := s.repo.CloseTx(tx, batch.ID, time.Now().UTC()); err != nil {
			return err
		}

		summary = dto.CloseBatchResponse{
			BatchNumber:     batch.BatchNumber,
			TargetQuantity:  batch.TargetQuantity,
			ActualQuantity:  batch.ActualQuantity,
			Variance:        batch.ActualQuantity.Sub(batch.TargetQuantity),
			YieldPercentage: batch.ActualQuantity.Div(batch.TargetQuantity).Mul(oneHundred).Round(requirementScale),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit batch record job — best effort, fire & forget
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueBatchReport(ctx, worker.BatchReportPayload{
			BatchID:         batchID.String(),
			BatchNumber:     summary.BatchNumber,
			YieldPercentage: summary.YieldPercentage.String(),
		})
	}

	return &summary, nil
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *batchService) ListBatches(ctx context.Context, filter dto.BatchFilter) (*dto.BatchListResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	batches, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		items = append(items, *batchToResponse(&batches[i]))
	}
	return &dto.BatchListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *batchService) GetBatch(ctx context.Context, id uuid.UUID) (*dto.BatchResponse, error) {
	batch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "batch", ID: id.String()}
		}
		return nil, err
	}
	return batchToResponse(batch), nil
}

func (s *batchService) ListTransactions(ctx context.Context, batchID uuid.UUID) ([]dto.TransactionResponse, error) {
	if _, err := s.repo.FindByID(ctx, batchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "batch", ID: batchID.String()}
		}
		return nil, err
	}
	txs, err := s.txRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, transactionToResponse(&txs[i]))
	}
	return out, nil
}

// ── Converters ───────────────────────────────────────────────────────────────

func batchToResponse(b *model.ManufacturingBatch) *dto.BatchResponse {
	var endDate *string
	if b.EndDate != nil {
		s := b.EndDate.Format(time.RFC3339)
		endDate = &s
	}
	return &dto.BatchResponse{
		ID:             b.ID.String(),
		BatchNumber:    b.BatchNumber,
		RecipeID:       b.RecipeID.String(),
		TargetQuantity: b.TargetQuantity,
		ActualQuantity: b.ActualQuantity,
		Status:         b.Status,
		StartDate:      b.StartDate.Format(time.RFC3339),
		EndDate:        endDate,
	}
}

func transactionToResponse(t *model.BatchTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID.String(),
		BatchID:     t.BatchID.String(),
		Type:        string(t.Type),
		ProductID:   t.ProductID.String(),
		Quantity:    t.Quantity,
		LotNumber:   t.LotNumber,
		ParentLotID: t.ParentLotID,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
