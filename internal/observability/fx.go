package observability

import (
	"github.com/pondworks/pondwatch/internal/config"
	"github.com/pondworks/pondwatch/internal/observability/logger"
	"github.com/pondworks/pondwatch/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		provideRegistry,
		metrics.New,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       true,
		IncludeStackOnError: !cfg.IsProduction(),
	}
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	return reg
}
