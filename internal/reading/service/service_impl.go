package service

import (
	"context"
	"math"
	"math/rand"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	"github.com/pondworks/pondwatch/internal/clock"
	obsmetrics "github.com/pondworks/pondwatch/internal/observability/metrics"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"github.com/pondworks/pondwatch/internal/userctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     readingdomain.Repository
	AlertSvc alertdomain.Service
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     readingdomain.Repository
	alertSvc alertdomain.Service
	metrics  *obsmetrics.Metrics
}

func New(p Params) readingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("reading.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		alertSvc: p.AlertSvc,
		metrics:  p.Metrics,
	}
}

// Create persists a reading and synchronously runs alert evaluation on it.
// The reading write is authoritative: an alerting failure is logged but does
// not fail the request.
func (s *Service) Create(ctx context.Context, req readingdomain.CreateRequest) (*readingdomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, readingdomain.ErrInvalidUser
	}

	if err := validateValues(req); err != nil {
		return nil, err
	}

	reading := &readingdomain.Reading{
		ID:          s.genID.Generate(),
		UserID:      userID,
		PH:          req.PH,
		WaterLevel:  req.WaterLevel,
		Temperature: req.Temperature,
		NH3:         req.NH3,
		Turbidity:   req.Turbidity,
		Timestamp:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, reading); err != nil {
		return nil, err
	}
	s.metrics.RecordReadingIngested()

	if err := s.alertSvc.Ingest(ctx, *reading); err != nil {
		s.log.Warn("alert ingestion degraded",
			zap.String("reading_id", reading.ID.String()),
			zap.Error(err),
		)
	}

	return toResponse(reading), nil
}

// CreateSample submits a randomly generated reading with values around the
// usual safe ranges. Used to exercise the dashboard without hardware.
func (s *Service) CreateSample(ctx context.Context) (*readingdomain.Response, error) {
	return s.Create(ctx, readingdomain.CreateRequest{
		PH:          sampleValue(6.5, 8.5),
		WaterLevel:  sampleValue(60, 90),
		Temperature: sampleValue(20, 28),
		NH3:         sampleValue(0, 3),
		Turbidity:   sampleValue(5, 30),
	})
}

func (s *Service) List(ctx context.Context, req readingdomain.ListRequest) ([]readingdomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, readingdomain.ErrInvalidUser
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	items, err := s.repo.List(ctx, s.db, userID, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) ListByTimeRange(ctx context.Context, req readingdomain.TimeRangeRequest) ([]readingdomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, readingdomain.ErrInvalidUser
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() || req.EndTime.Before(req.StartTime) {
		return nil, readingdomain.ErrInvalidTimeRange
	}

	items, err := s.repo.ListByTimeRange(ctx, s.db, userID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func validateValues(req readingdomain.CreateRequest) error {
	values := []*float64{req.PH, req.WaterLevel, req.Temperature, req.NH3, req.Turbidity}

	sampled := false
	for _, v := range values {
		if v == nil {
			continue
		}
		sampled = true
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return readingdomain.ErrInvalidValue
		}
	}

	if !sampled {
		return readingdomain.ErrEmptyReading
	}
	return nil
}

func sampleValue(min, max float64) *float64 {
	v := min + rand.Float64()*(max-min)
	return &v
}

func toResponse(r *readingdomain.Reading) *readingdomain.Response {
	return &readingdomain.Response{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		PH:          r.PH,
		WaterLevel:  r.WaterLevel,
		Temperature: r.Temperature,
		NH3:         r.NH3,
		Turbidity:   r.Turbidity,
		Timestamp:   r.Timestamp,
	}
}

func toResponses(items []readingdomain.Reading) []readingdomain.Response {
	resp := make([]readingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp
}
