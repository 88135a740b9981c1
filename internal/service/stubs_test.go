package service_test

import (
	"context"
	"sync"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory FormulaRepository stub ─────────────────────────────────────────

type stubFormulaRepo struct {
	formulas map[uuid.UUID]*model.Formula
}

func newStubFormulaRepo() *stubFormulaRepo {
	return &stubFormulaRepo{formulas: make(map[uuid.UUID]*model.Formula)}
}

func (r *stubFormulaRepo) Create(_ context.Context, f *model.Formula) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	for i := range f.Ingredients {
		if f.Ingredients[i].ID == uuid.Nil {
			f.Ingredients[i].ID = uuid.New()
		}
		f.Ingredients[i].FormulaID = f.ID
	}
	r.formulas[f.ID] = f
	return nil
}

func (r *stubFormulaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Formula, error) {
	f, ok := r.formulas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubFormulaRepo) List(_ context.Context) ([]model.Formula, int64, error) {
	out := make([]model.Formula, 0, len(r.formulas))
	for _, f := range r.formulas {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

var _ repository.FormulaRepository = (*stubFormulaRepo)(nil)

// ── In-memory RecipeRepository stub ──────────────────────────────────────────

type stubRecipeRepo struct {
	recipes map[uuid.UUID]*model.Recipe
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{recipes: make(map[uuid.UUID]*model.Recipe)}
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *model.Recipe) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recipes[rec.ID] = rec
	return nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubRecipeRepo) List(_ context.Context) ([]model.Recipe, int64, error) {
	out := make([]model.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

// ── In-memory BatchRepository stub ───────────────────────────────────────────

type stubBatchRepo struct {
	mu      sync.Mutex
	batches map[uuid.UUID]*model.ManufacturingBatch
	seq     int64
}

func newStubBatchRepo() *stubBatchRepo {
	return &stubBatchRepo{batches: make(map[uuid.UUID]*model.ManufacturingBatch)}
}

func (r *stubBatchRepo) DB() *gorm.DB { return nil }

func (r *stubBatchRepo) CreateTx(_ *gorm.DB, b *model.ManufacturingBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.batches[b.ID] = b
	return nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ManufacturingBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBatchRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.ManufacturingBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBatchRepo) List(_ context.Context, filter dto.BatchFilter) ([]model.ManufacturingBatch, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ManufacturingBatch
	for _, b := range r.batches {
		if filter.Status != "" && filter.Status != "all" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBatchRepo) NextBatchNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *stubBatchRepo) AddActualQuantityTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.ActualQuantity = b.ActualQuantity.Add(qty)
	return nil
}

func (r *stubBatchRepo) CloseTx(_ *gorm.DB, id uuid.UUID, endDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = model.BatchStatusClosed
	b.EndDate = &endDate
	return nil
}

var _ repository.BatchRepository = (*stubBatchRepo)(nil)

// ── In-memory TransactionRepository stub ─────────────────────────────────────

type stubTransactionRepo struct {
	mu  sync.Mutex
	txs []model.BatchTransaction
}

func newStubTransactionRepo() *stubTransactionRepo { return &stubTransactionRepo{} }

func (r *stubTransactionRepo) CreateTx(_ *gorm.DB, t *model.BatchTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.txs = append(r.txs, *t)
	return nil
}

func (r *stubTransactionRepo) ListByBatch(_ context.Context, batchID uuid.UUID) ([]model.BatchTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.BatchTransaction
	for _, t := range r.txs {
		if t.BatchID == batchID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) ListByLot(_ context.Context, lotNumber string) ([]model.BatchTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.BatchTransaction
	for _, t := range r.txs {
		if t.LotNumber != nil && *t.LotNumber == lotNumber {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) ListByLots(_ context.Context, lotNumbers []string) ([]model.BatchTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]struct{}, len(lotNumbers))
	for _, l := range lotNumbers {
		wanted[l] = struct{}{}
	}
	var out []model.BatchTransaction
	for _, t := range r.txs {
		if t.LotNumber == nil {
			continue
		}
		if _, ok := wanted[*t.LotNumber]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTransactionRepo) ListByParentLot(_ context.Context, lotNumber string) ([]model.BatchTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.BatchTransaction
	for _, t := range r.txs {
		if t.ParentLotID != nil && *t.ParentLotID == lotNumber {
			out = append(out, t)
		}
	}
	return out, nil
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── In-memory QualityRepository stub ─────────────────────────────────────────

type stubQualityRepo struct {
	results map[string][]model.QualityResult
}

func newStubQualityRepo() *stubQualityRepo {
	return &stubQualityRepo{results: make(map[string][]model.QualityResult)}
}

func (r *stubQualityRepo) ListByInspection(_ context.Context, inspectionID string) ([]model.QualityResult, error) {
	return r.results[inspectionID], nil
}

func (r *stubQualityRepo) Replace(_ context.Context, inspectionID string, results []model.QualityResult) error {
	stored := make([]model.QualityResult, len(results))
	for i, res := range results {
		if res.ID == uuid.Nil {
			res.ID = uuid.New()
		}
		res.InspectionID = inspectionID
		stored[i] = res
	}
	r.results[inspectionID] = stored
	return nil
}

var _ repository.QualityRepository = (*stubQualityRepo)(nil)
