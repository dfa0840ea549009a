//go:build unit

package middleware

import (
	"testing"
	"time"

	"studyroom-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestCORSConfig(t *testing.T) {
	base := config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}

	t.Run("adds requester and location headers", func(t *testing.T) {
		got := corsConfig(base)

		assert.Equal(t, []string{"Content-Type", RequesterHeader}, got.AllowHeaders)
		assert.Equal(t, []string{"Content-Length", "Location"}, got.ExposeHeaders)
		assert.Equal(t, []string{"Content-Type"}, base.AllowHeaders)
		assert.True(t, got.AllowCredentials)
		assert.False(t, got.AllowAllOrigins)
	})

	t.Run("does not duplicate configured headers", func(t *testing.T) {
		cfg := base
		cfg.AllowHeaders = []string{"x-user-name"}
		cfg.ExposeHeaders = []string{"location"}

		got := corsConfig(cfg)

		assert.Equal(t, []string{"x-user-name"}, got.AllowHeaders)
		assert.Equal(t, []string{"location"}, got.ExposeHeaders)
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		cfg := base
		cfg.AllowOrigins = []string{"*"}

		got := corsConfig(cfg)

		assert.True(t, got.AllowAllOrigins)
		assert.Nil(t, got.AllowOrigins)
		assert.False(t, got.AllowCredentials)
		assert.NoError(t, got.Validate())
	})
}
