package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error

	// ListForUser returns all thresholds of a user in store order.
	// It is the input to alert evaluation.
	ListForUser(ctx context.Context, userID string) ([]Threshold, error)
}

type CreateRequest struct {
	SensorType   string   `json:"sensor_type"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
	AlertEnabled *bool    `json:"alert_enabled"`
}

type UpdateRequest struct {
	ID           string   `json:"id"`
	MinValue     *float64 `json:"min_value,omitempty"`
	MaxValue     *float64 `json:"max_value,omitempty"`
	AlertEnabled *bool    `json:"alert_enabled,omitempty"`
}

type Response struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	SensorType   string   `json:"sensor_type"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
	AlertEnabled bool     `json:"alert_enabled"`
}

var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrInvalidSensorType = errors.New("invalid_sensor_type")
	ErrInvalidRange      = errors.New("invalid_range")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
)
