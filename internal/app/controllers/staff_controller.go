package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/middleware"
)

// StaffController handles the staff tab of the console
type StaffController struct {
	staff services.StaffService
}

// NewStaffController creates a new StaffController
func NewStaffController(staff services.StaffService) *StaffController {
	return &StaffController{staff: staff}
}

// ListStaff returns the stored roster
// @Summary List staff
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StaffProfile}
// @Router /admin/staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	list, err := c.staff.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list, ""))
}

// CreateStaff adds a profile
// @Summary Add a staff member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StaffRequest true "Profile"
// @Success 201 {object} dto.APIResponse{data=models.StaffProfile} "Staff added"
// @Failure 400 {object} dto.APIResponse "Name missing"
// @Router /admin/staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.StaffRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	profile, err := c.staff.Add(ctx.Request.Context(), req.ToProfile(""))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(profile, "Staff records updated."))
}

// UpdateStaff replaces a profile
// @Summary Update a staff member
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param request body dto.StaffRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=models.StaffProfile} "Staff updated"
// @Failure 404 {object} dto.APIResponse "Staff not found"
// @Router /admin/staff/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	var req dto.StaffRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	profile, err := c.staff.Update(ctx.Request.Context(), req.ToProfile(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Staff records updated."))
}

// DeleteStaff removes a profile once confirmed
// @Summary Delete a staff member
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse "Staff removed"
// @Failure 400 {object} dto.APIResponse "Confirmation required"
// @Router /admin/staff/{id} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	confirmed, _ := strconv.ParseBool(ctx.Query("confirm"))
	if err := c.staff.Delete(ctx.Request.Context(), ctx.Param("id"), confirmed); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Staff member removed."))
}

// UpdateStaffPhoto replaces a portrait
// @Summary Update a staff portrait
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param request body dto.PhotoRequest false "Image URL or data URL"
// @Param photo formData file false "Image file"
// @Success 200 {object} dto.APIResponse{data=models.StaffProfile}
// @Router /admin/staff/{id}/photo [put]
func (c *StaffController) UpdateStaffPhoto(ctx *gin.Context) {
	src, err := imageFromRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	profile, err := c.staff.UpdatePhoto(ctx.Request.Context(), ctx.Param("id"), src)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Portrait updated."))
}
