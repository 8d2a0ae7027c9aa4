package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Welcome to the Lab4 Flask API"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Index handles GET /
func Index(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}

// Health returns a handler for GET /health that checks the database.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
