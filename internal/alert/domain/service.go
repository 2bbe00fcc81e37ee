package domain

import (
	"context"
	"errors"
	"time"

	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
)

// Service runs the alert ingestion pipeline and manages alert state.
type Service interface {
	// Ingest evaluates a freshly persisted reading against the owner's
	// thresholds and persists the resulting alerts best-effort. A failure
	// writing one alert does not stop the others.
	Ingest(ctx context.Context, reading readingdomain.Reading) error

	List(ctx context.Context, req ListRequest) ([]Response, error)
	ListUnacknowledged(ctx context.Context) ([]Response, error)
	Acknowledge(ctx context.Context, id string) error
}

type ListRequest struct {
	Limit int `json:"limit"`
}

type Response struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SensorType   string    `json:"sensor_type"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	Value        float64   `json:"value"`
	Threshold    float64   `json:"threshold"`
	Acknowledged bool      `json:"acknowledged"`
	Timestamp    time.Time `json:"timestamp"`
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
