package main

// seeddemo loads a small demo dataset: two raw materials, a finished good,
// a formula mixing them (one percentage line with loss, one fixed line) and
// an active recipe pointing at it. Useful for local smoke testing.

import (
	"os"

	"batchforge/internal/config"
	"batchforge/internal/infra"
	"batchforge/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	blend := model.Product{ProductCode: "FG-BLEND-01", Name: "Base Blend 01", UOM: "kg", Active: true}
	resin := model.Product{ProductCode: "RM-RESIN", Name: "Resin Concentrate", UOM: "kg", Active: true}
	filler := model.Product{ProductCode: "RM-FILLER", Name: "Mineral Filler", UOM: "kg", Active: true}
	for _, p := range []*model.Product{&blend, &resin, &filler} {
		if err := db.Where("product_code = ?", p.ProductCode).FirstOrCreate(p).Error; err != nil {
			log.Fatal().Err(err).Str("product", p.ProductCode).Msg("seed product")
		}
	}

	sixty := decimal.NewFromInt(60)
	formula := model.Formula{
		FormulaNumber:  "F-0001",
		Name:           "Base Blend 01",
		ProductID:      blend.ID,
		TotalBatchSize: decimal.NewFromInt(100),
		UOM:            "kg",
		Ingredients: []model.FormulaIngredient{
			{ProductID: resin.ID, Percentage: &sixty, LossFactor: decimal.NewFromInt(5)},
			{ProductID: filler.ID, Quantity: decimal.NewFromInt(40)},
		},
	}
	if err := db.Where("formula_number = ?", formula.FormulaNumber).FirstOrCreate(&formula).Error; err != nil {
		log.Fatal().Err(err).Msg("seed formula")
	}

	recipe := model.Recipe{
		RecipeNumber: "R-0001",
		Name:         "Base Blend 01 / line A",
		FormulaID:    formula.ID,
		Status:       "active",
	}
	if err := db.Where("recipe_number = ?", recipe.RecipeNumber).FirstOrCreate(&recipe).Error; err != nil {
		log.Fatal().Err(err).Msg("seed recipe")
	}

	log.Info().
		Str("formula", formula.FormulaNumber).
		Str("recipe", recipe.RecipeNumber).
		Msg("demo data seeded")
}
