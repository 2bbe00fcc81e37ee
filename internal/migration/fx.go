package migration

import (
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"github.com/pondworks/pondwatch/internal/config"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"github.com/pondworks/pondwatch/internal/seed"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql deployments fall back to schema auto-migration.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&readingdomain.Reading{},
				&thresholddomain.Threshold{},
				&alertdomain.Alert{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData && !cfg.IsProduction() {
			return seed.EnsureDemoUser(conn)
		}
		return nil
	}),
)
