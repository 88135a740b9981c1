package handler

import (
	"net/http"

	"batchforge/internal/apierror"
	"batchforge/internal/service"

	"github.com/gin-gonic/gin"
)

type GenealogyHandler struct{ svc service.GenealogyService }

func NewGenealogyHandler(svc service.GenealogyService) *GenealogyHandler {
	return &GenealogyHandler{svc: svc}
}

// Get answers GET /v1/genealogy?lotNumber=… — an unknown lot returns an
// empty transaction list, not an error.
func (h *GenealogyHandler) Get(c *gin.Context) {
	lotNumber := c.Query("lotNumber")
	if lotNumber == "" {
		c.JSON(http.StatusBadRequest, apierror.New("lotNumber query parameter is required"))
		return
	}
	resp, err := h.svc.GetGenealogy(c.Request.Context(), lotNumber)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
