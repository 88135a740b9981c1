package service_test

import (
	"context"
	"testing"

	"batchforge/internal/model"
	"batchforge/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// seedFormula registers a formula in the stub repo and returns its ID.
func seedFormula(t *testing.T, repo *stubFormulaRepo, totalBatchSize string, lines ...model.FormulaIngredient) uuid.UUID {
	t.Helper()
	f := &model.Formula{
		FormulaNumber:  "F-TEST",
		Name:           "test formula",
		ProductID:      uuid.New(),
		TotalBatchSize: dec(totalBatchSize),
		UOM:            "kg",
		Ingredients:    lines,
	}
	require.NoError(t, repo.Create(context.Background(), f))
	return f.ID
}

func TestComputeRequirements_PercentageWithLoss(t *testing.T) {
	repo := newStubFormulaRepo()
	resin := uuid.New()
	filler := uuid.New()
	// 60% resin with 5% loss, 40 kg filler fixed against a 100 kg reference
	formulaID := seedFormula(t, repo, "100",
		model.FormulaIngredient{ProductID: resin, Percentage: decPtr("60"), LossFactor: dec("5")},
		model.FormulaIngredient{ProductID: filler, Quantity: dec("40")},
	)

	svc := service.NewExplosionService(repo)
	reqs, err := svc.ComputeRequirements(context.Background(), formulaID, dec("200"))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	// 200 × 60% = 120, grossed up by 5% loss: 120 / 0.95 = 126.3158
	assert.Equal(t, resin, reqs[0].ProductID)
	assert.True(t, reqs[0].Quantity.Equal(dec("126.3158")), "got %s", reqs[0].Quantity)

	// (200/100) × 40 = 80, no loss
	assert.Equal(t, filler, reqs[1].ProductID)
	assert.True(t, reqs[1].Quantity.Equal(dec("80")), "got %s", reqs[1].Quantity)
}

func TestComputeRequirements_ProportionalWithLoss(t *testing.T) {
	repo := newStubFormulaRepo()
	solvent := uuid.New()
	formulaID := seedFormula(t, repo, "50",
		model.FormulaIngredient{ProductID: solvent, Quantity: dec("10"), LossFactor: dec("20")},
	)

	svc := service.NewExplosionService(repo)
	reqs, err := svc.ComputeRequirements(context.Background(), formulaID, dec("75"))
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	// (75/50) × 10 = 15, grossed up: 15 / 0.8 = 18.75
	assert.True(t, reqs[0].Quantity.Equal(dec("18.75")), "got %s", reqs[0].Quantity)
}

func TestComputeRequirements_RoundsToFourDecimals(t *testing.T) {
	repo := newStubFormulaRepo()
	formulaID := seedFormula(t, repo, "3",
		model.FormulaIngredient{ProductID: uuid.New(), Quantity: dec("1")},
	)

	svc := service.NewExplosionService(repo)
	reqs, err := svc.ComputeRequirements(context.Background(), formulaID, dec("1"))
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	// 1/3 has no exact representation; the requirement is rounded, not truncated
	assert.True(t, reqs[0].Quantity.Equal(dec("0.3333")), "got %s", reqs[0].Quantity)
	assert.LessOrEqual(t, int(-reqs[0].Quantity.Exponent()), 4)
}

func TestComputeRequirements_LossFactorAtOrAbove100Rejected(t *testing.T) {
	repo := newStubFormulaRepo()
	formulaID := seedFormula(t, repo, "100",
		model.FormulaIngredient{ProductID: uuid.New(), Quantity: dec("10"), LossFactor: dec("100")},
	)

	svc := service.NewExplosionService(repo)
	_, err := svc.ComputeRequirements(context.Background(), formulaID, dec("50"))
	var cfgErr *service.InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "loss factor")
}

func TestComputeRequirements_NonPositiveTargetRejected(t *testing.T) {
	repo := newStubFormulaRepo()
	formulaID := seedFormula(t, repo, "100",
		model.FormulaIngredient{ProductID: uuid.New(), Quantity: dec("10")},
	)

	svc := service.NewExplosionService(repo)
	for _, target := range []string{"0", "-5"} {
		_, err := svc.ComputeRequirements(context.Background(), formulaID, dec(target))
		var cfgErr *service.InvalidConfigError
		assert.ErrorAs(t, err, &cfgErr, "target %s", target)
	}
}

func TestComputeRequirements_UnknownFormula(t *testing.T) {
	svc := service.NewExplosionService(newStubFormulaRepo())
	_, err := svc.ComputeRequirements(context.Background(), uuid.New(), dec("100"))
	var nfErr *service.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "formula", nfErr.Entity)
}

func TestComputeRequirements_EmptyFormula(t *testing.T) {
	repo := newStubFormulaRepo()
	formulaID := seedFormula(t, repo, "100")

	svc := service.NewExplosionService(repo)
	reqs, err := svc.ComputeRequirements(context.Background(), formulaID, dec("200"))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestComputeRequirements_ZeroLossIsIdentity(t *testing.T) {
	repo := newStubFormulaRepo()
	formulaID := seedFormula(t, repo, "100",
		model.FormulaIngredient{ProductID: uuid.New(), Percentage: decPtr("25")},
	)

	svc := service.NewExplosionService(repo)
	reqs, err := svc.ComputeRequirements(context.Background(), formulaID, dec("400"))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Quantity.Equal(dec("100")), "got %s", reqs[0].Quantity)
}
