package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one access log line per request through the global zap logger.
func Logger(skipPaths ...string) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(zap.L().Named("http"), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  skipPaths,
	})
}
