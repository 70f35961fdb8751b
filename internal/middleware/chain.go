package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Standard returns the global middleware in the order the router applies it.
// Logger runs outside ErrorHandler so it records the rendered status.
func Standard(log *zap.Logger, origins []string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		Recovery(log),
		Logger(log.Named("http")),
		ErrorHandler(log),
		CORSMiddleware(origins),
	}
}
