package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	"github.com/pondworks/pondwatch/internal/alert/evaluator"
	"github.com/pondworks/pondwatch/internal/clock"
	obsmetrics "github.com/pondworks/pondwatch/internal/observability/metrics"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"github.com/pondworks/pondwatch/internal/userctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         alertdomain.Repository
	ThresholdSvc thresholddomain.Service
	Metrics      *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         alertdomain.Repository
	thresholdSvc thresholddomain.Service
	metrics      *obsmetrics.Metrics
}

func New(p Params) alertdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("alert.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		thresholdSvc: p.ThresholdSvc,
		metrics:      p.Metrics,
	}
}

// Ingest loads the reading owner's thresholds, evaluates the reading and
// persists each emitted alert independently. Alert writes are best-effort:
// a failed insert is logged and counted, then the next one is attempted.
// Only a threshold-load failure is returned to the caller.
func (s *Service) Ingest(ctx context.Context, reading readingdomain.Reading) error {
	thresholds, err := s.thresholdSvc.ListForUser(ctx, reading.UserID.String())
	if err != nil {
		s.log.Error("load thresholds failed",
			zap.String("user_id", reading.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	requests := evaluator.Evaluate(reading, thresholds)
	now := s.clock.Now()

	for _, req := range requests {
		alert := &alertdomain.Alert{
			ID:           s.genID.Generate(),
			UserID:       req.UserID,
			SensorType:   req.SensorType,
			Message:      req.Message,
			Severity:     req.Severity,
			Value:        req.Value,
			Threshold:    req.Threshold,
			Acknowledged: false,
			Timestamp:    now,
		}
		if err := s.repo.Insert(ctx, s.db, alert); err != nil {
			s.metrics.RecordAlertWriteFailure()
			s.log.Error("persist alert failed",
				zap.String("user_id", req.UserID.String()),
				zap.String("sensor_type", req.SensorType.String()),
				zap.Error(err),
			)
			continue
		}
		s.metrics.RecordAlertEmitted(req.SensorType.String())
	}

	return nil
}

func (s *Service) List(ctx context.Context, req alertdomain.ListRequest) ([]alertdomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, alertdomain.ErrInvalidUser
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

func (s *Service) ListUnacknowledged(ctx context.Context) ([]alertdomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, alertdomain.ErrInvalidUser
	}

	items, err := s.repo.ListUnacknowledged(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// Acknowledge flips an alert to acknowledged. The transition is one-way and
// idempotent: acknowledging an already-acknowledged alert succeeds.
func (s *Service) Acknowledge(ctx context.Context, id string) error {
	alertID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return alertdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, alertID)
	if err != nil {
		return err
	}
	if item == nil {
		return alertdomain.ErrNotFound
	}

	return s.repo.Acknowledge(ctx, s.db, alertID)
}

func toResponses(items []alertdomain.Alert) []alertdomain.Response {
	resp := make([]alertdomain.Response, 0, len(items))
	for i := range items {
		item := &items[i]
		resp = append(resp, alertdomain.Response{
			ID:           item.ID.String(),
			UserID:       item.UserID.String(),
			SensorType:   item.SensorType.String(),
			Message:      item.Message,
			Severity:     string(item.Severity),
			Value:        item.Value,
			Threshold:    item.Threshold,
			Acknowledged: item.Acknowledged,
			Timestamp:    item.Timestamp,
		})
	}
	return resp
}
