package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	CreateSample(ctx context.Context) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	ListByTimeRange(ctx context.Context, req TimeRangeRequest) ([]Response, error)
}

type CreateRequest struct {
	PH          *float64 `json:"ph"`
	WaterLevel  *float64 `json:"water_level"`
	Temperature *float64 `json:"temperature"`
	NH3         *float64 `json:"nh3"`
	Turbidity   *float64 `json:"turbidity"`
}

type ListRequest struct {
	Limit int `json:"limit"`
}

type TimeRangeRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type Response struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PH          *float64  `json:"ph"`
	WaterLevel  *float64  `json:"water_level"`
	Temperature *float64  `json:"temperature"`
	NH3         *float64  `json:"nh3"`
	Turbidity   *float64  `json:"turbidity"`
	Timestamp   time.Time `json:"timestamp"`
}

var (
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidValue     = errors.New("invalid_value")
	ErrEmptyReading     = errors.New("empty_reading")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)
