//go:build integration

package repository_test

// Integration tests against a real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"

	"batchforge/internal/dto"
	"batchforge/internal/infra"
	"batchforge/internal/model"
	"batchforge/internal/repository"
	"batchforge/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		tcPostgres.WithDatabase("batchforge_test"),
		tcPostgres.WithUsername("batchforge"),
		tcPostgres.WithPassword("batchforge"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

type seededData struct {
	recipeID uuid.UUID
	product  uuid.UUID
}

// seedProduction inserts a product, the standard two-line formula and an
// active recipe, returning what the lifecycle tests need.
func seedProduction(t *testing.T, db *gorm.DB) seededData {
	t.Helper()

	finished := model.Product{ProductCode: "FG-01", Name: "finished blend", UOM: "kg", Active: true}
	resin := model.Product{ProductCode: "RM-RESIN", Name: "resin", UOM: "kg", Active: true}
	filler := model.Product{ProductCode: "RM-FILLER", Name: "filler", UOM: "kg", Active: true}
	require.NoError(t, db.Create(&finished).Error)
	require.NoError(t, db.Create(&resin).Error)
	require.NoError(t, db.Create(&filler).Error)

	formula := model.Formula{
		FormulaNumber:  "F-0001",
		Name:           "standard blend",
		ProductID:      finished.ID,
		TotalBatchSize: dec("100"),
		UOM:            "kg",
		Ingredients: []model.FormulaIngredient{
			{ProductID: resin.ID, Percentage: decPtr("60"), LossFactor: dec("5")},
			{ProductID: filler.ID, Quantity: dec("40")},
		},
	}
	require.NoError(t, db.Create(&formula).Error)

	recipe := model.Recipe{RecipeNumber: "R-0001", Name: "standard", FormulaID: formula.ID, Status: "active"}
	require.NoError(t, db.Create(&recipe).Error)

	return seededData{recipeID: recipe.ID, product: finished.ID}
}

func newBatchService(db *gorm.DB, txRepo repository.TransactionRepository) service.BatchService {
	batchRepo := repository.NewBatchRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	explosion := service.NewExplosionService(repository.NewFormulaRepository(db))
	return service.NewBatchService(batchRepo, txRepo, recipeRepo, explosion, nil)
}

// failingTxRepo forces the Nth feed insert to fail so the release
// transaction has to roll back mid-write.
type failingTxRepo struct {
	repository.TransactionRepository
	mu      sync.Mutex
	created int
	failAt  int
}

func (r *failingTxRepo) CreateTx(tx *gorm.DB, t *model.BatchTransaction) error {
	r.mu.Lock()
	r.created++
	n := r.created
	r.mu.Unlock()
	if n == r.failAt {
		return errors.New("simulated insert failure")
	}
	return r.TransactionRepository.CreateTx(tx, t)
}

func TestReleaseBatch_RollsBackOnFeedFailure(t *testing.T) {
	db := setupDB(t)
	seed := seedProduction(t, db)

	txRepo := &failingTxRepo{
		TransactionRepository: repository.NewTransactionRepository(db),
		failAt:                2, // second feed line
	}
	svc := newBatchService(db, txRepo)

	_, err := svc.ReleaseBatch(context.Background(), dto.ReleaseBatchRequest{
		RecipeID: seed.recipeID.String(),
		Quantity: dec("200"),
	})
	require.Error(t, err)

	// Nothing survives the rollback: no batch header, no feed rows, and the
	// drawn sequence number is simply skipped
	var batches, txs int64
	require.NoError(t, db.Model(&model.ManufacturingBatch{}).Count(&batches).Error)
	require.NoError(t, db.Model(&model.BatchTransaction{}).Count(&txs).Error)
	assert.Zero(t, batches)
	assert.Zero(t, txs)
}

func TestReleaseBatch_PersistsFeedsAtomically(t *testing.T) {
	db := setupDB(t)
	seed := seedProduction(t, db)
	svc := newBatchService(db, repository.NewTransactionRepository(db))

	resp, err := svc.ReleaseBatch(context.Background(), dto.ReleaseBatchRequest{
		RecipeID: seed.recipeID.String(),
		Quantity: dec("200"),
	})
	require.NoError(t, err)
	assert.Equal(t, "B-00000001", resp.BatchNumber)

	var txs []model.BatchTransaction
	require.NoError(t, db.Where("batch_id = ?", resp.ID).Find(&txs).Error)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, model.TxFeed, tx.Type)
	}
}

func TestRecordYield_ConcurrentRowLockSerializes(t *testing.T) {
	db := setupDB(t)
	seed := seedProduction(t, db)
	svc := newBatchService(db, repository.NewTransactionRepository(db))

	released, err := svc.ReleaseBatch(context.Background(), dto.ReleaseBatchRequest{
		RecipeID: seed.recipeID.String(),
		Quantity: dec("200"),
	})
	require.NoError(t, err)
	batchID := uuid.MustParse(released.ID)

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.RecordYield(context.Background(), batchID, dto.RecordYieldRequest{
				ProductID: seed.product.String(),
				Quantity:  dec("5"),
				Type:      "YIELD",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var batch model.ManufacturingBatch
	require.NoError(t, db.First(&batch, "id = ?", batchID).Error)
	assert.True(t, batch.ActualQuantity.Equal(dec("50")), "got %s", batch.ActualQuantity)
}

func TestNextBatchNumber_UniqueUnderConcurrentReleases(t *testing.T) {
	db := setupDB(t)
	seed := seedProduction(t, db)
	svc := newBatchService(db, repository.NewTransactionRepository(db))

	const n = 8
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			resp, err := svc.ReleaseBatch(context.Background(), dto.ReleaseBatchRequest{
				RecipeID: seed.recipeID.String(),
				Quantity: dec("100"),
			})
			assert.NoError(t, err)
			if err == nil {
				numbers <- resp.BatchNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "batch number %s issued twice", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestQualityReplace_DeleteThenInsert(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewQualityRepository(db)
	ctx := context.Background()

	first := []model.QualityResult{
		{ParameterName: "viscosity", Value: dec("4200"), UOM: "cP", Passed: true},
		{ParameterName: "pH", Value: dec("7.1"), Passed: true},
	}
	require.NoError(t, repo.Replace(ctx, "INSP-001", first))

	second := []model.QualityResult{
		{ParameterName: "density", Value: dec("1.042"), UOM: "g/ml", Passed: false},
	}
	require.NoError(t, repo.Replace(ctx, "INSP-001", second))

	got, err := repo.ListByInspection(ctx, "INSP-001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "density", got[0].ParameterName)
}
