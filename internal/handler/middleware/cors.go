package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"studyroom-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the CORS policy. The requester header is always accepted and
// Location is always exposed so browsers can follow a created reservation.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, RequesterHeader),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, "Location"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		// browsers reject credentials on a wildcard origin
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowOrigins = nil
		if corsCfg.AllowCredentials {
			slog.Warn("CORS credentials disabled for wildcard origin")
			corsCfg.AllowCredentials = false
		}
	}

	slog.Info("CORS middleware initialized",
		"AllowOrigins", cfg.AllowOrigins,
		"AllowAllOrigins", corsCfg.AllowAllOrigins,
	)
	return corsCfg
}

func withHeader(headers []string, header string) []string {
	for _, h := range headers {
		if http.CanonicalHeaderKey(h) == http.CanonicalHeaderKey(header) {
			return headers
		}
	}
	return append(slices.Clone(headers), header)
}
