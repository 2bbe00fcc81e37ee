package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, alert *Alert) error
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]Alert, error)
	ListUnacknowledged(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Alert, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Alert, error)
	Acknowledge(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
