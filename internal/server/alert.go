package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
)

func (s *Server) ListAlerts(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.alertSvc.List(c.Request.Context(), alertdomain.ListRequest{
		Limit: query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUnacknowledgedAlerts(c *gin.Context) {
	resp, err := s.alertSvc.ListUnacknowledged(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AcknowledgeAlert(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.alertSvc.Acknowledge(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"acknowledged": true}})
}
