package handler

import (
	"net/http"

	"batchforge/internal/apierror"
	"batchforge/internal/dto"
	"batchforge/internal/service"

	"github.com/gin-gonic/gin"
)

type QualityHandler struct{ svc service.QualityService }

func NewQualityHandler(svc service.QualityService) *QualityHandler {
	return &QualityHandler{svc: svc}
}

func (h *QualityHandler) Get(c *gin.Context) {
	inspectionID := c.Param("inspectionId")
	if inspectionID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("inspection id is required"))
		return
	}
	resp, err := h.svc.GetResults(c.Request.Context(), inspectionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QualityHandler) Save(c *gin.Context) {
	inspectionID := c.Param("inspectionId")
	if inspectionID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("inspection id is required"))
		return
	}
	var req dto.SaveQualityResultsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReplaceResults(c.Request.Context(), inspectionID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
