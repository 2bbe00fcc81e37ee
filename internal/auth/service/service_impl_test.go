package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"github.com/pondworks/pondwatch/internal/auth/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&authdomain.User{}, &authdomain.Session{}))
	assert.NoError(t, db.Exec("DELETE FROM sessions").Error)
	assert.NoError(t, db.Exec("DELETE FROM users").Error)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.ProvideUserRepository(),
		SessionRepo: repository.ProvideSessionRepository(),
	})
	return svc.(*Service), db
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})

	assert.NoError(t, err)
	assert.Equal(t, "keeper@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	session, err := svc.Authenticate(context.Background(), resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, resp.User.ID, session.UserID.String())
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "  Keeper@Example.COM ",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})

	assert.NoError(t, err)
	assert.Equal(t, "keeper@example.com", resp.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	req := authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	}
	_, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  authdomain.RegisterRequest
		want error
	}{
		{
			name: "bad email",
			req:  authdomain.RegisterRequest{Email: "not-an-email", Password: "swim-safely-1", Name: "Keeper"},
			want: authdomain.ErrInvalidEmail,
		},
		{
			name: "short password",
			req:  authdomain.RegisterRequest{Email: "keeper@example.com", Password: "short", Name: "Keeper"},
			want: authdomain.ErrInvalidPassword,
		},
		{
			name: "blank name",
			req:  authdomain.RegisterRequest{Email: "keeper@example.com", Password: "swim-safely-1", Name: "  "},
			want: authdomain.ErrInvalidName,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})
	assert.NoError(t, err)

	resp, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "keeper@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "swim-safely-1",
	})

	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), resp.Token))

	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	assert.NoError(t, svc.Logout(context.Background(), "unknown-token"))
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	svc, db := newTestService(t)

	resp, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "keeper@example.com",
		Password: "swim-safely-1",
		Name:     "Pond Keeper",
	})
	assert.NoError(t, err)

	assert.NoError(t, db.Exec("UPDATE sessions SET expires_at = datetime('now', '-1 hour')").Error)

	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)
}

func TestGetUser_Unknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "123456789")

	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}
