package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/heart-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

var _ Pinger = (*pgxpool.Pool)(nil)

type healthPayload struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database,omitempty"`
}

// Health GET /health. With a pinger, a failed database ping answers 503.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := healthPayload{Success: true, Message: "Server is running", Timestamp: time.Now()}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				p.Success = false
				p.Message = "Database unavailable"
				p.Database = "down"
				c.JSON(http.StatusServiceUnavailable, p)
				return
			}
			p.Database = "up"
		}
		c.JSON(http.StatusOK, p)
	}
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found", nil)
}
