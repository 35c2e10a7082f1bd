package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"vidtube/infrastructure/utils"
)

type IHealthHandler interface {
	HealthCheck(c *gin.Context)
}

type HealthHandler struct {
	client    *mongo.Client
	startedAt time.Time
}

func NewHealthHandler(client *mongo.Client) IHealthHandler {
	return &HealthHandler{client: client, startedAt: utils.GetCurrentTime()}
}

// HealthCheck reports uptime and whether Mongo answers a ping. A failing
// ping degrades the status but still answers 200 so load balancers can see
// the process itself is alive.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	database := "up"
	if h.client == nil {
		database = "down"
	} else if err := h.client.Ping(c.Request.Context(), readpref.Primary()); err != nil {
		database = "down"
	}

	respond(c, http.StatusOK, gin.H{
		"status":   "ok",
		"database": database,
		"uptime":   time.Since(h.startedAt).String(),
	}, "everything is fine")
}
