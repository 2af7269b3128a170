package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/middleware"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/imaging"
)

// ApplicationSubmittedMessage confirms an accepted application
const ApplicationSubmittedMessage = "Application submitted successfully. Our admissions team will contact you shortly."

// AdmissionController handles the admissions page
type AdmissionController struct {
	admissions services.AdmissionService
	enquiry    services.EnquiryService
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissions services.AdmissionService, enquiry services.EnquiryService) *AdmissionController {
	return &AdmissionController{admissions: admissions, enquiry: enquiry}
}

// Submit handles a complete application in one request
// @Summary Submit an application
// @Description Validates fullName, email, admissionClass and passportPhoto, then stores the application as Pending
// @Tags admissions
// @Accept json
// @Produce json
// @Param request body models.AdmissionForm true "Application"
// @Success 201 {object} dto.APIResponse{data=models.AdmissionForm} "Application stored"
// @Failure 400 {object} dto.APIResponse "Missing required fields"
// @Router /admissions [post]
func (c *AdmissionController) Submit(ctx *gin.Context) {
	var form models.AdmissionForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid application data"))
		return
	}

	saved, err := c.admissions.Submit(ctx.Request.Context(), form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(saved, ApplicationSubmittedMessage))
}

// Chat answers an admissions question
// @Summary Ask the admissions assistant
// @Description Never fails on the assistant's account; a fixed answer replaces any upstream failure
// @Tags admissions
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse}
// @Failure 400 {object} dto.APIResponse "Empty question"
// @Router /admissions/chat [post]
func (c *AdmissionController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reply, err := c.enquiry.Ask(ctx.Request.Context(), req.Query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ChatResponse{Reply: reply}, ""))
}

// CreateDraft opens an empty application form
// @Summary Start an application draft
// @Tags admissions
// @Produce json
// @Success 201 {object} dto.APIResponse{data=services.DraftView}
// @Router /admissions/drafts [post]
func (c *AdmissionController) CreateDraft(ctx *gin.Context) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(c.admissions.NewDraft(), ""))
}

// reply writes the draft view, or the error with the draft view when there is one
func (c *AdmissionController) reply(ctx *gin.Context, view *services.DraftView, err error, message string) {
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, message))
}

// GetDraft returns a draft
// @Summary Get an application draft
// @Tags admissions
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 404 {object} dto.APIResponse "Draft not found"
// @Router /admissions/drafts/{id} [get]
func (c *AdmissionController) GetDraft(ctx *gin.Context) {
	view, err := c.admissions.GetDraft(ctx.Param("id"))
	c.reply(ctx, view, err, "")
}

// UpdateDraft edits the text fields of a draft
// @Summary Update draft fields
// @Tags admissions
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.DraftFieldsRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 409 {object} dto.APIResponse "Draft already submitted"
// @Router /admissions/drafts/{id} [patch]
func (c *AdmissionController) UpdateDraft(ctx *gin.Context) {
	var req dto.DraftFieldsRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	view, err := c.admissions.UpdateDraft(ctx.Param("id"), req)
	c.reply(ctx, view, err, "")
}

// StartCamera opens the camera of a draft
// @Summary Start the camera
// @Description The browser reports its camera permission; denied or unavailable cameras leave the draft unchanged
// @Tags admissions
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body dto.CameraRequest true "Permission state"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 422 {object} dto.APIResponse "Camera unavailable"
// @Router /admissions/drafts/{id}/camera [post]
func (c *AdmissionController) StartCamera(ctx *gin.Context) {
	var req dto.CameraRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	view, err := c.admissions.StartCamera(ctx.Request.Context(), ctx.Param("id"), imaging.NewClientCamera(req.Permission))
	c.reply(ctx, view, err, "")
}

// PushFrame receives a preview frame as a JPEG or PNG body
// @Summary Push a camera frame
// @Tags admissions
// @Accept image/jpeg
// @Accept image/png
// @Param id path string true "Draft ID"
// @Success 204 "Frame accepted"
// @Failure 409 {object} dto.APIResponse "Camera not running"
// @Router /admissions/drafts/{id}/camera/frame [put]
func (c *AdmissionController) PushFrame(ctx *gin.Context) {
	if err := c.admissions.FeedFrame(ctx.Param("id"), ctx.Request.Body); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CapturePhoto freezes the latest frame into the passport photo
// @Summary Capture the passport photo
// @Tags admissions
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 422 {object} dto.APIResponse "No frame yet"
// @Router /admissions/drafts/{id}/camera/capture [post]
func (c *AdmissionController) CapturePhoto(ctx *gin.Context) {
	view, err := c.admissions.CapturePhoto(ctx.Request.Context(), ctx.Param("id"))
	c.reply(ctx, view, err, "")
}

// CancelCamera stops the camera without changing the photo
// @Summary Cancel the camera
// @Tags admissions
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Router /admissions/drafts/{id}/camera [delete]
func (c *AdmissionController) CancelCamera(ctx *gin.Context) {
	view, err := c.admissions.CancelCamera(ctx.Param("id"))
	c.reply(ctx, view, err, "")
}

// UploadPhoto sets the passport photo from a file
// @Summary Upload the passport photo
// @Tags admissions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Draft ID"
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 400 {object} dto.APIResponse "Not an image"
// @Router /admissions/drafts/{id}/photo [put]
func (c *AdmissionController) UploadPhoto(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError().Add("passportPhoto", "Photo required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	view, err := c.admissions.UploadPhoto(ctx.Param("id"), file)
	c.reply(ctx, view, err, "")
}

// SubmitDraft validates and stores a draft
// @Summary Submit a draft
// @Description Missing fields keep the draft editable and are reported per field
// @Tags admissions
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Failure 400 {object} dto.APIResponse "Missing required fields"
// @Failure 409 {object} dto.APIResponse "Draft already submitted"
// @Router /admissions/drafts/{id}/submit [post]
func (c *AdmissionController) SubmitDraft(ctx *gin.Context) {
	view, err := c.admissions.SubmitDraft(ctx.Request.Context(), ctx.Param("id"))
	c.reply(ctx, view, err, ApplicationSubmittedMessage)
}

// ResetDraft clears a draft for a new application
// @Summary Reset a draft
// @Tags admissions
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.APIResponse{data=services.DraftView}
// @Router /admissions/drafts/{id}/reset [post]
func (c *AdmissionController) ResetDraft(ctx *gin.Context) {
	view, err := c.admissions.ResetDraft(ctx.Param("id"))
	c.reply(ctx, view, err, "")
}

// DiscardDraft drops a draft
// @Summary Discard a draft
// @Tags admissions
// @Param id path string true "Draft ID"
// @Success 204 "Draft discarded"
// @Router /admissions/drafts/{id} [delete]
func (c *AdmissionController) DiscardDraft(ctx *gin.Context) {
	c.admissions.DiscardDraft(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}
