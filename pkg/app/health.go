package app

import (
	"context"
	httputil "hotelbooking/pkg/http"
	kafkamw "hotelbooking/pkg/kafka/middleware"
	"hotelbooking/pkg/logger"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database,omitempty"`
	Kafka    *kafkamw.Snapshot `json:"kafka,omitempty"`
}

type HealthHandler struct {
	db      Pinger
	metrics *kafkamw.Metrics
	log     *logger.Logger
}

// NewHealthHandler builds the liveness and readiness endpoints. metrics may be nil
// when Kafka is disabled.
func NewHealthHandler(db Pinger, metrics *kafkamw.Metrics, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		metrics: metrics,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ready", Database: "ok"}
	if h.metrics != nil {
		snapshot := h.metrics.Snapshot()
		resp.Kafka = &snapshot
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		status = http.StatusServiceUnavailable
		resp.Status = "unavailable"
		resp.Database = "error"
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
