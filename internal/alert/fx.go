package alert

import (
	"github.com/pondworks/pondwatch/internal/alert/repository"
	"github.com/pondworks/pondwatch/internal/alert/service"
	"go.uber.org/fx"
)

var Module = fx.Module("alert.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
