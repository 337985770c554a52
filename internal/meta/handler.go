package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/database"
	"github.com/gin-gonic/gin"
)

// Handler serves operational endpoints (health check, enabled features)
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

// Health reports database reachability together with the endpoints this
// instance exposes, so a probe can tell a misconfigured deploy apart.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	dbCheck := gin.H{
		"driver": h.cfg.Database.Driver,
		"status": "up",
	}

	if err := h.db.HealthCheck(ctx); err != nil {
		slog.Error("Health check 실패", "driver", h.cfg.Database.Driver, "error", err)

		dbCheck["status"] = "down"
		dbCheck["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": h.service(),
			"checks":  gin.H{"database": dbCheck},
		})
		return
	}
	dbCheck["latency_ms"] = time.Since(start).Milliseconds()

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  h.service(),
		"checks":   gin.H{"database": dbCheck},
		"features": h.features(),
	})
}

func (h *Handler) service() gin.H {
	return gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
		"port":        h.cfg.App.Port,
	}
}

func (h *Handler) features() gin.H {
	features := gin.H{
		"graphql": gin.H{
			"path":       h.cfg.GraphQL.Path,
			"playground": h.cfg.GraphQL.Playground,
		},
	}
	if h.cfg.Metrics.Enabled {
		features["metrics"] = gin.H{"path": h.cfg.Metrics.Path}
	}
	return features
}
