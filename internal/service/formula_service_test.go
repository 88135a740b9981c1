package service_test

import (
	"context"
	"testing"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormulaService() (service.FormulaService, *stubFormulaRepo) {
	repo := newStubFormulaRepo()
	return service.NewFormulaService(repo, service.NewExplosionService(repo)), repo
}

func validFormulaRequest() dto.CreateFormulaRequest {
	return dto.CreateFormulaRequest{
		FormulaNumber:  "F-0001",
		Name:           "standard blend",
		ProductID:      uuid.NewString(),
		TotalBatchSize: dec("100"),
		Ingredients: []dto.FormulaIngredientRequest{
			{ProductID: uuid.NewString(), Percentage: decPtr("60"), LossFactor: dec("5")},
			{ProductID: uuid.NewString(), Quantity: dec("40")},
		},
	}
}

func TestCreateFormula_PersistsWithIngredients(t *testing.T) {
	svc, repo := newFormulaService()

	resp, err := svc.Create(context.Background(), validFormulaRequest())
	require.NoError(t, err)

	assert.Equal(t, "F-0001", resp.FormulaNumber)
	assert.Equal(t, "kg", resp.UOM) // defaulted
	require.Len(t, resp.Ingredients, 2)
	assert.NotNil(t, resp.Ingredients[0].Percentage)
	assert.Nil(t, resp.Ingredients[1].Percentage)
	assert.Len(t, repo.formulas, 1)
}

func TestCreateFormula_LossFactorOutOfRange(t *testing.T) {
	svc, repo := newFormulaService()

	req := validFormulaRequest()
	req.Ingredients[0].LossFactor = dec("100")

	_, err := svc.Create(context.Background(), req)
	var cfgErr *service.InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, repo.formulas) // nothing persisted
}

func TestCreateFormula_NonPositivePercentage(t *testing.T) {
	svc, _ := newFormulaService()

	req := validFormulaRequest()
	req.Ingredients[0].Percentage = decPtr("0")

	_, err := svc.Create(context.Background(), req)
	var cfgErr *service.InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestCreateFormula_ProportionalLineNeedsQuantity(t *testing.T) {
	svc, _ := newFormulaService()

	req := validFormulaRequest()
	req.Ingredients[1].Quantity = dec("0")

	_, err := svc.Create(context.Background(), req)
	var cfgErr *service.InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestExplodeFormula_DryRun(t *testing.T) {
	svc, repo := newFormulaService()
	formulaID := seedFormula(t, repo, "100",
		model.FormulaIngredient{ProductID: uuid.New(), Percentage: decPtr("60"), LossFactor: dec("5")},
	)

	resp, err := svc.Explode(context.Background(), formulaID, dto.ExplodeRequest{Quantity: dec("200")})
	require.NoError(t, err)
	require.Len(t, resp.Requirements, 1)
	assert.True(t, resp.Requirements[0].Quantity.Equal(dec("126.3158")))
}

func TestCreateRecipe_RequiresExistingFormula(t *testing.T) {
	formulaRepo := newStubFormulaRepo()
	svc := service.NewRecipeService(newStubRecipeRepo(), formulaRepo)

	_, err := svc.Create(context.Background(), dto.CreateRecipeRequest{
		RecipeNumber: "R-0001",
		Name:         "std",
		FormulaID:    uuid.NewString(),
	})
	var nfErr *service.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "formula", nfErr.Entity)
}

func TestCreateRecipe_DefaultsToActive(t *testing.T) {
	formulaRepo := newStubFormulaRepo()
	formulaID := seedFormula(t, formulaRepo, "100",
		model.FormulaIngredient{ProductID: uuid.New(), Quantity: dec("10")},
	)
	svc := service.NewRecipeService(newStubRecipeRepo(), formulaRepo)

	resp, err := svc.Create(context.Background(), dto.CreateRecipeRequest{
		RecipeNumber: "R-0001",
		Name:         "std",
		FormulaID:    formulaID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}
