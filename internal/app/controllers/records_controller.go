package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/middleware"
	"github.com/qmc/portal/internal/pkg/apperrors"
)

// RecordsController serves applications, registration numbers and the audit log
type RecordsController struct {
	admissions   services.AdmissionService
	registration services.RegistrationService
	audit        services.AuditService
}

// NewRecordsController creates a new RecordsController
func NewRecordsController(
	admissions services.AdmissionService,
	registration services.RegistrationService,
	audit services.AuditService,
) *RecordsController {
	return &RecordsController{admissions: admissions, registration: registration, audit: audit}
}

// ListApplications returns every submitted application
// @Summary List applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AdmissionForm}
// @Router /admin/applications [get]
func (c *RecordsController) ListApplications(ctx *gin.Context) {
	apps, err := c.admissions.ListApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, ""))
}

// GetRegistrations returns the registration counter and history
// @Summary Registration state
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.RegistrationState}
// @Router /admin/registrations [get]
func (c *RecordsController) GetRegistrations(ctx *gin.Context) {
	state, err := c.registration.State(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(state, ""))
}

// IssueRegistration issues the next registration number
// @Summary Issue a registration number
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=models.RegistrationState}
// @Router /admin/registrations [post]
func (c *RecordsController) IssueRegistration(ctx *gin.Context) {
	id, err := c.registration.Issue(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	state, err := c.registration.State(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(state, "Issued "+id))
}

// ListLogs returns the audit trail, newest first
// @Summary List audit logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LogEntry}
// @Router /admin/logs [get]
func (c *RecordsController) ListLogs(ctx *gin.Context) {
	entries, err := c.audit.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries, ""))
}

// ClearLogs empties the audit trail once confirmed
// @Summary Clear audit logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse "Logs cleared"
// @Failure 400 {object} dto.APIResponse "Confirmation required"
// @Router /admin/logs [delete]
func (c *RecordsController) ClearLogs(ctx *gin.Context) {
	if confirmed, _ := strconv.ParseBool(ctx.Query("confirm")); !confirmed {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrConfirmationRequired, "Clear all audit logs?"))
		return
	}
	if err := c.audit.Clear(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Audit logs cleared."))
}
