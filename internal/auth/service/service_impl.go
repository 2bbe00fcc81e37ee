package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"github.com/pondworks/pondwatch/internal/auth/password"
	"github.com/pondworks/pondwatch/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        authdomain.Repository
	SessionRepo authdomain.SessionRepository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        authdomain.Repository
	sessionRepo authdomain.SessionRepository
}

func New(p Params) authdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("auth.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		sessionRepo: p.SessionRepo,
	}
}

func (s *Service) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, authdomain.ErrInvalidEmail
	}

	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, authdomain.ErrInvalidPassword
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, authdomain.ErrInvalidName
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, authdomain.ErrUserExists
		}
		return nil, err
	}

	return s.startSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, authdomain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return authdomain.ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, s.db, session.ID)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, authdomain.ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authdomain.ErrInvalidSession
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, authdomain.ErrSessionExpired
	}
	return session, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*authdomain.UserResponse, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, authdomain.ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (s *Service) startSession(ctx context.Context, user *authdomain.User) (*authdomain.AuthResponse, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &authdomain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Insert(ctx, s.db, session); err != nil {
		return nil, err
	}

	return &authdomain.AuthResponse{
		User:  *toUserResponse(user),
		Token: rawToken,
	}, nil
}

func toUserResponse(user *authdomain.User) *authdomain.UserResponse {
	return &authdomain.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", authdomain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", authdomain.ErrInvalidEmail
	}
	return email, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
