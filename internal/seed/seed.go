package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"github.com/pondworks/pondwatch/internal/auth/password"
	"github.com/pondworks/pondwatch/internal/sensor"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@pondwatch.local"
	demoPassword = "demo-password"
	demoName     = "Demo Pond"
)

type defaultThreshold struct {
	sensorType sensor.Type
	minValue   *float64
	maxValue   *float64
}

func defaultThresholds() []defaultThreshold {
	return []defaultThreshold{
		{sensorType: sensor.TypePH, minValue: f(6.5), maxValue: f(8.5)},
		{sensorType: sensor.TypeWaterLevel, minValue: f(50), maxValue: nil},
		{sensorType: sensor.TypeTemperature, minValue: f(18), maxValue: f(30)},
		{sensorType: sensor.TypeNH3, minValue: nil, maxValue: f(1)},
		{sensorType: sensor.TypeTurbidity, minValue: nil, maxValue: f(50)},
	}
}

// EnsureDemoUser creates the demo account with a default threshold per sensor
// if it does not exist yet. Existing data is never touched, so the seed is
// safe to run on every startup.
func EnsureDemoUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ensureUserTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureThresholdsTx(ctx, tx, node, user.ID)
	})
}

func ensureUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*authdomain.User, error) {
	var existing authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := password.Hash(demoPassword)
	if err != nil {
		return nil, err
	}

	user := authdomain.User{
		ID:           node.Generate(),
		Email:        demoEmail,
		PasswordHash: hash,
		Name:         demoName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureThresholdsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, userID snowflake.ID) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&thresholddomain.Threshold{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultThresholds() {
		threshold := thresholddomain.Threshold{
			ID:           node.Generate(),
			UserID:       userID,
			SensorType:   def.sensorType,
			MinValue:     def.minValue,
			MaxValue:     def.maxValue,
			AlertEnabled: true,
		}
		if err := tx.WithContext(ctx).Create(&threshold).Error; err != nil {
			return err
		}
	}
	return nil
}

func f(v float64) *float64 {
	return &v
}
