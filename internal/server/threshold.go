package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
)

type createThresholdRequest struct {
	SensorType   string   `json:"sensor_type"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
	AlertEnabled *bool    `json:"alert_enabled"`
}

type updateThresholdRequest struct {
	MinValue     *float64 `json:"min_value,omitempty"`
	MaxValue     *float64 `json:"max_value,omitempty"`
	AlertEnabled *bool    `json:"alert_enabled,omitempty"`
}

func (s *Server) CreateThreshold(c *gin.Context) {
	var req createThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.thresholdSvc.Create(c.Request.Context(), thresholddomain.CreateRequest{
		SensorType:   strings.TrimSpace(req.SensorType),
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
		AlertEnabled: req.AlertEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListThresholds(c *gin.Context) {
	resp, err := s.thresholdSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateThreshold(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.thresholdSvc.Update(c.Request.Context(), thresholddomain.UpdateRequest{
		ID:           id,
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
		AlertEnabled: req.AlertEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteThreshold(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.thresholdSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
