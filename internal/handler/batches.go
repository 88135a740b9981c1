package handler

import (
	"net/http"

	"batchforge/internal/apierror"
	"batchforge/internal/dto"
	"batchforge/internal/infra"
	"batchforge/internal/repository"
	"batchforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BatchesHandler struct {
	svc service.BatchService
	// repositories are used directly by the record.pdf endpoint, which
	// renders from the raw models rather than the API DTOs
	batchRepo   repository.BatchRepository
	txRepo      repository.TransactionRepository
	storagePath string
}

func NewBatchesHandler(svc service.BatchService, batchRepo repository.BatchRepository, txRepo repository.TransactionRepository, storagePath string) *BatchesHandler {
	return &BatchesHandler{svc: svc, batchRepo: batchRepo, txRepo: txRepo, storagePath: storagePath}
}

func (h *BatchesHandler) Release(c *gin.Context) {
	var req dto.ReleaseBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReleaseBatch(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) List(c *gin.Context) {
	var filter dto.BatchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	resp, err := h.svc.ListBatches(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) Get(c *gin.Context) {
	id, ok := parseBatchID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetBatch(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) ListTransactions(c *gin.Context) {
	id, ok := parseBatchID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListTransactions(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BatchesHandler) RecordYield(c *gin.Context) {
	id, ok := parseBatchID(c)
	if !ok {
		return
	}
	var req dto.RecordYieldRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordYield(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BatchesHandler) Close(c *gin.Context) {
	id, ok := parseBatchID(c)
	if !ok {
		return
	}
	resp, err := h.svc.CloseBatch(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordPDF renders and serves the printable batch record.
func (h *BatchesHandler) RecordPDF(c *gin.Context) {
	id, ok := parseBatchID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	batch, err := h.batchRepo.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("batch not found"))
		return
	}
	transactions, err := h.txRepo.ListByBatch(ctx, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	path, err := infra.GenerateBatchRecordPDF(batch, transactions, h.storagePath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "batch_"+batch.BatchNumber+".pdf")
}

func parseBatchID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid batch id"))
		return uuid.Nil, false
	}
	return id, true
}
