package threshold

import (
	"github.com/pondworks/pondwatch/internal/threshold/repository"
	"github.com/pondworks/pondwatch/internal/threshold/service"
	"go.uber.org/fx"
)

var Module = fx.Module("threshold.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
