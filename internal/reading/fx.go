package reading

import (
	"github.com/pondworks/pondwatch/internal/reading/repository"
	"github.com/pondworks/pondwatch/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
