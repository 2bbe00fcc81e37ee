package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
)

type createReadingRequest struct {
	PH          *float64 `json:"ph"`
	WaterLevel  *float64 `json:"water_level"`
	Temperature *float64 `json:"temperature"`
	NH3         *float64 `json:"nh3"`
	Turbidity   *float64 `json:"turbidity"`
}

func (s *Server) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.Create(c.Request.Context(), readingdomain.CreateRequest{
		PH:          req.PH,
		WaterLevel:  req.WaterLevel,
		Temperature: req.Temperature,
		NH3:         req.NH3,
		Turbidity:   req.Turbidity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) CreateSampleReading(c *gin.Context) {
	resp, err := s.readingSvc.CreateSample(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.List(c.Request.Context(), readingdomain.ListRequest{
		Limit: query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadingsByRange(c *gin.Context) {
	start, err := parseTimeParam(c.Query("start_time"))
	if err != nil {
		AbortWithError(c, newValidationError("start_time", "invalid_time_range", "invalid start time"))
		return
	}
	end, err := parseTimeParam(c.Query("end_time"))
	if err != nil {
		AbortWithError(c, newValidationError("end_time", "invalid_time_range", "invalid end time"))
		return
	}

	resp, err := s.readingSvc.ListByTimeRange(c.Request.Context(), readingdomain.TimeRangeRequest{
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseTimeParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
