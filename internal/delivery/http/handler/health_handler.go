package handler

import (
	"net/http"

	"go-clinic-booking/pkg/response"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
	}
}

// Check pings the database and Redis so load balancers see real readiness
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if err := h.redisClient.Ping(r.Context()).Err(); err != nil {
		status["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service unhealthy", status)
		return
	}

	response.Success(w, http.StatusOK, "Service healthy", status)
}
