package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() alertdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, alert *alertdomain.Alert) error {
	return db.WithContext(ctx).Create(alert).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]alertdomain.Alert, error) {
	var alerts []alertdomain.Alert
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *repo) ListUnacknowledged(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]alertdomain.Alert, error) {
	var alerts []alertdomain.Alert
	err := db.WithContext(ctx).
		Where("user_id = ? AND acknowledged = ?", userID, false).
		Order("timestamp DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*alertdomain.Alert, error) {
	var alert alertdomain.Alert
	err := db.WithContext(ctx).Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *repo) Acknowledge(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE alerts SET acknowledged = ? WHERE id = ?`,
		true,
		id,
	).Error
}
