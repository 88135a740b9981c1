package service_test

import (
	"context"
	"testing"

	"batchforge/internal/dto"
	"batchforge/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_DefaultsUOM(t *testing.T) {
	svc := service.NewProductService(newStubProductRepo())

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		ProductCode: "RM-RESIN",
		Name:        "Resin Concentrate",
	})
	require.NoError(t, err)
	assert.Equal(t, "kg", resp.UOM)
	assert.True(t, resp.Active)

	got, err := svc.Get(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "RM-RESIN", got.ProductCode)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := service.NewProductService(newStubProductRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	var nfErr *service.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "product", nfErr.Entity)
}
