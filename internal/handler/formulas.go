package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"batchforge/internal/apierror"
	"batchforge/internal/dto"
	"batchforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const formulaCacheTTL = 1 * time.Hour

// FormulasHandler serves formula authoring and the dry-run explosion
// endpoint. Formula detail reads go through a Redis read-through cache —
// formulas have no update path, so entries never go stale.
type FormulasHandler struct {
	svc service.FormulaService
	rdb *redis.Client
}

func NewFormulasHandler(svc service.FormulaService, rdb *redis.Client) *FormulasHandler {
	return &FormulasHandler{svc: svc, rdb: rdb}
}

func (h *FormulasHandler) Create(c *gin.Context) {
	var req dto.CreateFormulaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FormulasHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormulasHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid formula id"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "formula:" + id.String()

	// 1. Try Redis cache
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.FormulaResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, formulaCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FormulasHandler) Explode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid formula id"))
		return
	}
	var req dto.ExplodeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Explode(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
