package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() thresholddomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *thresholddomain.Threshold) error {
	return db.WithContext(ctx).Create(t).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, t *thresholddomain.Threshold) error {
	return db.WithContext(ctx).Exec(
		`UPDATE thresholds
		 SET min_value = ?, max_value = ?, alert_enabled = ?
		 WHERE id = ?`,
		t.MinValue,
		t.MaxValue,
		t.AlertEnabled,
		t.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM thresholds WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*thresholddomain.Threshold, error) {
	var threshold thresholddomain.Threshold
	err := db.WithContext(ctx).Where("id = ?", id).First(&threshold).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &threshold, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]thresholddomain.Threshold, error) {
	var thresholds []thresholddomain.Threshold
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&thresholds).Error
	if err != nil {
		return nil, err
	}
	return thresholds, nil
}
