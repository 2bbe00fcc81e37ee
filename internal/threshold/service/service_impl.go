package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pondworks/pondwatch/internal/sensor"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"github.com/pondworks/pondwatch/internal/userctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  thresholddomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  thresholddomain.Repository
}

func New(p Params) thresholddomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("threshold.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req thresholddomain.CreateRequest) (*thresholddomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, thresholddomain.ErrInvalidUser
	}

	sensorType := sensor.Type(strings.TrimSpace(req.SensorType))
	if !sensor.Valid(sensorType) {
		return nil, thresholddomain.ErrInvalidSensorType
	}

	if req.MinValue != nil && req.MaxValue != nil && *req.MinValue > *req.MaxValue {
		return nil, thresholddomain.ErrInvalidRange
	}

	alertEnabled := true
	if req.AlertEnabled != nil {
		alertEnabled = *req.AlertEnabled
	}

	t := &thresholddomain.Threshold{
		ID:           s.genID.Generate(),
		UserID:       userID,
		SensorType:   sensorType,
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
		AlertEnabled: alertEnabled,
	}
	if err := s.repo.Insert(ctx, s.db, t); err != nil {
		return nil, err
	}

	return toResponse(t), nil
}

func (s *Service) List(ctx context.Context) ([]thresholddomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, thresholddomain.ErrInvalidUser
	}

	items, err := s.repo.List(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]thresholddomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req thresholddomain.UpdateRequest) (*thresholddomain.Response, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, thresholddomain.ErrInvalidUser
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, thresholddomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, thresholddomain.ErrNotFound
	}

	if req.MinValue != nil {
		item.MinValue = req.MinValue
	}
	if req.MaxValue != nil {
		item.MaxValue = req.MaxValue
	}
	if item.MinValue != nil && item.MaxValue != nil && *item.MinValue > *item.MaxValue {
		return nil, thresholddomain.ErrInvalidRange
	}
	if req.AlertEnabled != nil {
		item.AlertEnabled = *req.AlertEnabled
	}

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	return toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return thresholddomain.ErrInvalidUser
	}

	thresholdID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return thresholddomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, thresholdID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return thresholddomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, thresholdID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]thresholddomain.Threshold, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || id == 0 {
		return nil, thresholddomain.ErrInvalidUser
	}
	return s.repo.List(ctx, s.db, id)
}

func toResponse(t *thresholddomain.Threshold) *thresholddomain.Response {
	return &thresholddomain.Response{
		ID:           t.ID.String(),
		UserID:       t.UserID.String(),
		SensorType:   t.SensorType.String(),
		MinValue:     t.MinValue,
		MaxValue:     t.MaxValue,
		AlertEnabled: t.AlertEnabled,
	}
}
