package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *Reading) error
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]Reading, error)
	ListByTimeRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, start, end time.Time) ([]Reading, error)
}
