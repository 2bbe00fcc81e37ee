package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	"github.com/pondworks/pondwatch/internal/clock"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"github.com/pondworks/pondwatch/internal/sensor"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"github.com/pondworks/pondwatch/internal/userctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Insert(ctx context.Context, db *gorm.DB, alert *alertdomain.Alert) error {
	args := m.Called(ctx, db, alert)
	return args.Error(0)
}

func (m *mockRepository) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]alertdomain.Alert, error) {
	args := m.Called(ctx, db, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]alertdomain.Alert), args.Error(1)
}

func (m *mockRepository) ListUnacknowledged(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]alertdomain.Alert, error) {
	args := m.Called(ctx, db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]alertdomain.Alert), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*alertdomain.Alert, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alertdomain.Alert), args.Error(1)
}

func (m *mockRepository) Acknowledge(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

type mockThresholdSvc struct {
	mock.Mock
}

func (m *mockThresholdSvc) Create(ctx context.Context, req thresholddomain.CreateRequest) (*thresholddomain.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*thresholddomain.Response), args.Error(1)
}

func (m *mockThresholdSvc) List(ctx context.Context) ([]thresholddomain.Response, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]thresholddomain.Response), args.Error(1)
}

func (m *mockThresholdSvc) Update(ctx context.Context, req thresholddomain.UpdateRequest) (*thresholddomain.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*thresholddomain.Response), args.Error(1)
}

func (m *mockThresholdSvc) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockThresholdSvc) ListForUser(ctx context.Context, userID string) ([]thresholddomain.Threshold, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]thresholddomain.Threshold), args.Error(1)
}

func f(v float64) *float64 {
	return &v
}

func newTestService(t *testing.T, repo alertdomain.Repository, thresholdSvc thresholddomain.Service) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Repo:         repo,
		ThresholdSvc: thresholdSvc,
	})
	return svc.(*Service)
}

func TestIngest_PersistsEachAlert(t *testing.T) {
	userID := snowflake.ID(42)
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	thresholdSvc.On("ListForUser", mock.Anything, userID.String()).Return([]thresholddomain.Threshold{
		{UserID: userID, SensorType: sensor.TypePH, MinValue: f(6.5), AlertEnabled: true},
		{UserID: userID, SensorType: sensor.TypeTemperature, MaxValue: f(30), AlertEnabled: true},
	}, nil)
	repo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	reading := readingdomain.Reading{
		UserID:      userID,
		PH:          f(5),
		Temperature: f(35),
	}

	err := svc.Ingest(context.Background(), reading)

	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Insert", 2)
}

func TestIngest_WriteFailureDoesNotStopOthers(t *testing.T) {
	userID := snowflake.ID(42)
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	thresholdSvc.On("ListForUser", mock.Anything, userID.String()).Return([]thresholddomain.Threshold{
		{UserID: userID, SensorType: sensor.TypePH, MinValue: f(6.5), AlertEnabled: true},
		{UserID: userID, SensorType: sensor.TypeTemperature, MaxValue: f(30), AlertEnabled: true},
	}, nil)

	repo.On("Insert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *alertdomain.Alert) bool {
		return a.SensorType == sensor.TypePH
	})).Return(errors.New("disk full"))
	repo.On("Insert", mock.Anything, mock.Anything, mock.MatchedBy(func(a *alertdomain.Alert) bool {
		return a.SensorType == sensor.TypeTemperature
	})).Return(nil)

	reading := readingdomain.Reading{
		UserID:      userID,
		PH:          f(5),
		Temperature: f(35),
	}

	err := svc.Ingest(context.Background(), reading)

	// Alert writes are best-effort; only threshold loading failures surface.
	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Insert", 2)
}

func TestIngest_ThresholdLoadFailureSurfaces(t *testing.T) {
	userID := snowflake.ID(42)
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	loadErr := errors.New("store offline")
	thresholdSvc.On("ListForUser", mock.Anything, userID.String()).Return(nil, loadErr)

	err := svc.Ingest(context.Background(), readingdomain.Reading{UserID: userID, PH: f(5)})

	assert.ErrorIs(t, err, loadErr)
	repo.AssertNotCalled(t, "Insert")
}

func TestIngest_NoMatchingThresholdsNoWrites(t *testing.T) {
	userID := snowflake.ID(42)
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	thresholdSvc.On("ListForUser", mock.Anything, userID.String()).Return([]thresholddomain.Threshold{}, nil)

	err := svc.Ingest(context.Background(), readingdomain.Reading{UserID: userID, PH: f(5)})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Insert")
}

func TestAcknowledge_Idempotent(t *testing.T) {
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	alertID := snowflake.ID(777)
	acked := &alertdomain.Alert{ID: alertID, Acknowledged: true}

	repo.On("FindByID", mock.Anything, mock.Anything, alertID).Return(acked, nil)
	repo.On("Acknowledge", mock.Anything, mock.Anything, alertID).Return(nil)

	assert.NoError(t, svc.Acknowledge(context.Background(), alertID.String()))
	assert.NoError(t, svc.Acknowledge(context.Background(), alertID.String()))
}

func TestAcknowledge_UnknownAlert(t *testing.T) {
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	alertID := snowflake.ID(888)
	repo.On("FindByID", mock.Anything, mock.Anything, alertID).Return(nil, nil)

	err := svc.Acknowledge(context.Background(), alertID.String())

	assert.ErrorIs(t, err, alertdomain.ErrNotFound)
	repo.AssertNotCalled(t, "Acknowledge")
}

func TestAcknowledge_InvalidID(t *testing.T) {
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	err := svc.Acknowledge(context.Background(), "not-a-snowflake")

	assert.ErrorIs(t, err, alertdomain.ErrInvalidID)
}

func TestList_RequiresUser(t *testing.T) {
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	_, err := svc.List(context.Background(), alertdomain.ListRequest{})

	assert.ErrorIs(t, err, alertdomain.ErrInvalidUser)
}

func TestList_DefaultsLimit(t *testing.T) {
	userID := snowflake.ID(42)
	repo := new(mockRepository)
	thresholdSvc := new(mockThresholdSvc)
	svc := newTestService(t, repo, thresholdSvc)

	repo.On("List", mock.Anything, mock.Anything, userID, defaultListLimit).Return([]alertdomain.Alert{}, nil)

	ctx := userctx.WithUserID(context.Background(), userID)
	resp, err := svc.List(ctx, alertdomain.ListRequest{})

	assert.NoError(t, err)
	assert.Empty(t, resp)
	repo.AssertExpectations(t)
}
