package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/middleware"
	"github.com/rs/zerolog"
)

// ConsoleController handles console sign-in and the security tab
type ConsoleController struct {
	console   services.ConsoleService
	dashboard services.DashboardService
	logger    zerolog.Logger
}

// NewConsoleController creates a new ConsoleController
func NewConsoleController(console services.ConsoleService, dashboard services.DashboardService, logger zerolog.Logger) *ConsoleController {
	return &ConsoleController{console: console, dashboard: dashboard, logger: logger}
}

// Login handles console sign-in
// @Summary Sign in to the admin console
// @Description Compares both fields with the stored credentials. Successes and failures are audited.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Signed in"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /admin/login [post]
func (c *ConsoleController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.console.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", session.Username).Msg("Console session started")
	resp := dto.LoginResponse{Token: session.Token, Username: session.Username}
	if !session.ExpiresAt.IsZero() {
		resp.ExpiresAt = session.ExpiresAt.Format(time.RFC3339)
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Access granted"))
}

// Logout ends the current session
// @Summary Sign out of the admin console
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Signed out"
// @Failure 401 {object} dto.APIResponse "Not signed in"
// @Router /admin/logout [post]
func (c *ConsoleController) Logout(ctx *gin.Context) {
	if err := c.console.Logout(ctx.Request.Context(), middleware.ClaimsFrom(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Signed out"))
}

// Dashboard returns the overview tab
// @Summary Console overview
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.Dashboard}
// @Router /admin/dashboard [get]
func (c *ConsoleController) Dashboard(ctx *gin.Context) {
	d, err := c.dashboard.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(d, ""))
}

// GetSecurity returns the console login
// @Summary Get console credentials
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AdminCredentials}
// @Router /admin/security [get]
func (c *ConsoleController) GetSecurity(ctx *gin.Context) {
	creds, err := c.console.GetCredentials(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(creds, ""))
}

// UpdateSecurity replaces the console login
// @Summary Update console credentials
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AdminCredentials true "New credentials"
// @Success 200 {object} dto.APIResponse "Credentials updated"
// @Failure 400 {object} dto.APIResponse "Missing fields"
// @Router /admin/security [put]
func (c *ConsoleController) UpdateSecurity(ctx *gin.Context) {
	var creds models.AdminCredentials
	if err := middleware.BindJSON(ctx, &creds); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.console.UpdateCredentials(ctx.Request.Context(), creds); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Security credentials updated."))
}
