package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() readingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *readingdomain.Reading) error {
	return db.WithContext(ctx).Create(reading).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]readingdomain.Reading, error) {
	var readings []readingdomain.Reading
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) ListByTimeRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, start, end time.Time) ([]readingdomain.Reading, error) {
	var readings []readingdomain.Reading
	err := db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", userID, start, end).
		Order("timestamp DESC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}
