package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/qmc/portal/internal/pkg/websocket"
)

// HealthStatus is the body of the health check
type HealthStatus struct {
	Status      string `json:"status"`
	StoreDriver string `json:"storeDriver"`
	Viewers     int    `json:"viewers"`
}

// HealthController reports whether the store answers
type HealthController struct {
	store  kvstore.Store
	driver string
	hub    *websocket.Hub
}

// NewHealthController creates a new HealthController
func NewHealthController(store kvstore.Store, driver string, hub *websocket.Hub) *HealthController {
	return &HealthController{store: store, driver: driver, hub: hub}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=HealthStatus}
// @Failure 503 {object} dto.APIResponse "Store unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Status: "ok", StoreDriver: c.driver, Viewers: c.hub.ClientCount()}
	if _, err := c.store.Keys(probeCtx); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Store unavailable").WithDetails(err.Error())
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
