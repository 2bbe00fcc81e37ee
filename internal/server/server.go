package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pondworks/pondwatch/internal/alert"
	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	"github.com/pondworks/pondwatch/internal/auth"
	authdomain "github.com/pondworks/pondwatch/internal/auth/domain"
	"github.com/pondworks/pondwatch/internal/config"
	"github.com/pondworks/pondwatch/internal/observability"
	obslogger "github.com/pondworks/pondwatch/internal/observability/logger"
	obsmetrics "github.com/pondworks/pondwatch/internal/observability/metrics"
	"github.com/pondworks/pondwatch/internal/ratelimit"
	"github.com/pondworks/pondwatch/internal/reading"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"github.com/pondworks/pondwatch/internal/threshold"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(registerGin),
	auth.Module,
	reading.Module,
	threshold.Module,
	alert.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *obsmetrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, metrics *obsmetrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	return NewEngine(log, metrics, reg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	authsvc       authdomain.Service
	readingSvc    readingdomain.Service
	thresholdSvc  thresholddomain.Service
	alertSvc      alertdomain.Service
	obsMetrics    *obsmetrics.Metrics
	ingestLimiter *ratelimit.IngestLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Authsvc      authdomain.Service
	ReadingSvc   readingdomain.Service
	ThresholdSvc thresholddomain.Service
	AlertSvc     alertdomain.Service

	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
	IngestLimiter *ratelimit.IngestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http.server"),
		genID:         p.GenID,
		authsvc:       p.Authsvc,
		readingSvc:    p.ReadingSvc,
		thresholdSvc:  p.ThresholdSvc,
		alertSvc:      p.AlertSvc,
		obsMetrics:    p.ObsMetrics,
		ingestLimiter: p.IngestLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Readings --------
	api.POST("/readings", s.ReadingIngestRateLimit(), s.CreateReading)
	api.GET("/readings", s.ListReadings)
	api.GET("/readings/range", s.ListReadingsByRange)

	// -------- Thresholds --------
	api.GET("/thresholds", s.ListThresholds)
	api.POST("/thresholds", s.CreateThreshold)
	api.PATCH("/thresholds/:id", s.UpdateThreshold)
	api.DELETE("/thresholds/:id", s.DeleteThreshold)

	// -------- Alerts --------
	api.GET("/alerts", s.ListAlerts)
	api.GET("/alerts/unacknowledged", s.ListUnacknowledgedAlerts)
	api.POST("/alerts/:id/acknowledge", s.AcknowledgeAlert)

	if s.cfg.Environment != "production" {
		api.POST("/readings/sample", s.CreateSampleReading)
	}
}
