package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, threshold *Threshold) error
	Update(ctx context.Context, db *gorm.DB, threshold *Threshold) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Threshold, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Threshold, error)
}
