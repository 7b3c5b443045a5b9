package httpkit

import (
	"net/http"
	"time"

	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/net/middleware"
)

// CommonStack is the middleware every API route gets
// reads API_REQUEST_TIMEOUT and API_CORS_ORIGINS from cfg
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(cfg.MayDuration("API_REQUEST_TIMEOUT", 30*time.Second))
	return append(stack,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: cfg.MayCSV("API_CORS_ORIGINS", nil)}),
		middleware.AllowContentType("application/json"),
	)
}
