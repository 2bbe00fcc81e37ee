package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"github.com/pondworks/pondwatch/internal/threshold/repository"
	"github.com/pondworks/pondwatch/internal/userctx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func f(v float64) *float64 {
	return &v
}

func b(v bool) *bool {
	return &v
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&thresholddomain.Threshold{}))
	assert.NoError(t, db.Exec("DELETE FROM thresholds").Error)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc.(*Service), db
}

func userContext(userID snowflake.ID) context.Context {
	return userctx.WithUserID(context.Background(), userID)
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	resp, err := svc.Create(ctx, thresholddomain.CreateRequest{
		SensorType: "ph",
		MinValue:   f(6.5),
		MaxValue:   f(8.5),
	})

	assert.NoError(t, err)
	assert.Equal(t, "ph", resp.SensorType)
	assert.True(t, resp.AlertEnabled, "alerts default to enabled")
	assert.Equal(t, 6.5, *resp.MinValue)
	assert.Equal(t, 8.5, *resp.MaxValue)
}

func TestCreate_RejectsUnknownSensor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	_, err := svc.Create(ctx, thresholddomain.CreateRequest{SensorType: "salinity"})

	assert.ErrorIs(t, err, thresholddomain.ErrInvalidSensorType)
}

func TestCreate_RejectsInvertedRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	_, err := svc.Create(ctx, thresholddomain.CreateRequest{
		SensorType: "temperature",
		MinValue:   f(30),
		MaxValue:   f(20),
	})

	assert.ErrorIs(t, err, thresholddomain.ErrInvalidRange)
}

func TestCreate_RequiresUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), thresholddomain.CreateRequest{SensorType: "ph"})

	assert.ErrorIs(t, err, thresholddomain.ErrInvalidUser)
}

func TestList_ScopedToUser(t *testing.T) {
	svc, _ := newTestService(t)
	owner := snowflake.ID(42)
	other := snowflake.ID(43)

	_, err := svc.Create(userContext(owner), thresholddomain.CreateRequest{SensorType: "ph", MinValue: f(6.5)})
	assert.NoError(t, err)
	_, err = svc.Create(userContext(other), thresholddomain.CreateRequest{SensorType: "nh3", MaxValue: f(1)})
	assert.NoError(t, err)

	items, err := svc.List(userContext(owner))

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "ph", items[0].SensorType)
}

func TestUpdate_PatchesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	created, err := svc.Create(ctx, thresholddomain.CreateRequest{
		SensorType: "ph",
		MinValue:   f(6.5),
		MaxValue:   f(8.5),
	})
	assert.NoError(t, err)

	updated, err := svc.Update(ctx, thresholddomain.UpdateRequest{
		ID:           created.ID,
		MinValue:     f(6.0),
		AlertEnabled: b(false),
	})

	assert.NoError(t, err)
	assert.Equal(t, 6.0, *updated.MinValue)
	assert.Equal(t, 8.5, *updated.MaxValue)
	assert.False(t, updated.AlertEnabled)
}

func TestUpdate_RejectsInvertedRangeAfterPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	created, err := svc.Create(ctx, thresholddomain.CreateRequest{
		SensorType: "ph",
		MinValue:   f(6.5),
		MaxValue:   f(8.5),
	})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, thresholddomain.UpdateRequest{
		ID:       created.ID,
		MinValue: f(9),
	})

	assert.ErrorIs(t, err, thresholddomain.ErrInvalidRange)
}

func TestUpdate_OtherUsersThresholdNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(userContext(snowflake.ID(42)), thresholddomain.CreateRequest{
		SensorType: "ph",
		MinValue:   f(6.5),
	})
	assert.NoError(t, err)

	_, err = svc.Update(userContext(snowflake.ID(43)), thresholddomain.UpdateRequest{
		ID:       created.ID,
		MinValue: f(6.0),
	})

	assert.ErrorIs(t, err, thresholddomain.ErrNotFound)
}

func TestDelete_RemovesThreshold(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	created, err := svc.Create(ctx, thresholddomain.CreateRequest{SensorType: "turbidity", MaxValue: f(50)})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestDelete_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := userContext(snowflake.ID(42))

	err := svc.Delete(ctx, "999999999")

	assert.ErrorIs(t, err, thresholddomain.ErrNotFound)
}

func TestListForUser_ReturnsModels(t *testing.T) {
	svc, _ := newTestService(t)
	owner := snowflake.ID(42)

	_, err := svc.Create(userContext(owner), thresholddomain.CreateRequest{SensorType: "ph", MinValue: f(6.5)})
	assert.NoError(t, err)

	items, err := svc.ListForUser(context.Background(), owner.String())

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, owner, items[0].UserID)
}
