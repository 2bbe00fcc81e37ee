package auth

import (
	"github.com/pondworks/pondwatch/internal/auth/repository"
	"github.com/pondworks/pondwatch/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideUserRepository),
	fx.Provide(repository.ProvideSessionRepository),
	fx.Provide(service.New),
)
