package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"gorm.io/gorm"
)

type userRepo struct{}

func ProvideUserRepository() authdomain.Repository {
	return &userRepo{}
}

func (r *userRepo) Insert(ctx context.Context, db *gorm.DB, user *authdomain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*authdomain.User, error) {
	var user authdomain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type sessionRepo struct{}

func ProvideSessionRepository() authdomain.SessionRepository {
	return &sessionRepo{}
}

func (r *sessionRepo) Insert(ctx context.Context, db *gorm.DB, session *authdomain.Session) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) FindByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*authdomain.Session, error) {
	var session authdomain.Session
	err := db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM sessions WHERE id = ?`, id).Error
}
