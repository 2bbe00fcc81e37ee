package server

import (
	"github.com/gin-gonic/gin"
	"github.com/pondworks/pondwatch/internal/userctx"
	"go.uber.org/zap"
)

// ReadingIngestRateLimit throttles reading submissions per user when the
// redis-backed limiter is configured. Without it every request passes.
func (s *Server) ReadingIngestRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.ingestLimiter == nil || !s.ingestLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID, ok := userctx.UserIDFromContext(ctx)
		if !ok || userID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		allowed, err := s.ingestLimiter.Allow(ctx, userID.String())
		if err != nil {
			s.log.Warn("reading ingest rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !allowed {
			s.log.Warn("reading ingest rate limit exceeded", zap.String("user_id", userID.String()))
			c.Header("Retry-After", "1")
			AbortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
