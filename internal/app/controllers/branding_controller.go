package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/services"
	"github.com/qmc/portal/internal/middleware"
)

// BrandingController handles the branding tab
type BrandingController struct {
	branding services.BrandingService
	quotes   services.QuoteService
}

// NewBrandingController creates a new BrandingController
func NewBrandingController(branding services.BrandingService, quotes services.QuoteService) *BrandingController {
	return &BrandingController{branding: branding, quotes: quotes}
}

// GetBranding returns the site configuration
// @Summary Get branding
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.SiteConfig}
// @Router /admin/branding [get]
func (c *BrandingController) GetBranding(ctx *gin.Context) {
	cfg, err := c.branding.GetConfig(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cfg, ""))
}

// UpdateBranding replaces the site configuration
// @Summary Update branding
// @Description Replaces the whole configuration; every open view refreshes its navbar
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SiteConfig true "Site configuration"
// @Success 200 {object} dto.APIResponse{data=models.SiteConfig} "Branding saved"
// @Failure 400 {object} dto.APIResponse "Missing fields"
// @Router /admin/branding [put]
func (c *BrandingController) UpdateBranding(ctx *gin.Context) {
	var cfg models.SiteConfig
	if err := middleware.BindJSON(ctx, &cfg); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.branding.UpdateConfig(ctx.Request.Context(), cfg); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cfg, "Branding updated successfully!"))
}

func (c *BrandingController) setImage(ctx *gin.Context, set func(context.Context, string) error) {
	src, err := imageFromRequest(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := set(ctx.Request.Context(), src); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PhotoRequest{Image: src}, "Image updated."))
}

// SetHeroImage replaces the home hero image
// @Summary Set the hero image
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body dto.PhotoRequest false "Image URL or data URL"
// @Param photo formData file false "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.PhotoRequest}
// @Router /admin/branding/hero-image [put]
func (c *BrandingController) SetHeroImage(ctx *gin.Context) {
	c.setImage(ctx, c.branding.SetHeroImage)
}

// SetDirectorImage replaces the director portrait on the home page
// @Summary Set the director image
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body dto.PhotoRequest false "Image URL or data URL"
// @Param photo formData file false "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.PhotoRequest}
// @Router /admin/branding/director-image [put]
func (c *BrandingController) SetDirectorImage(ctx *gin.Context) {
	c.setImage(ctx, c.branding.SetDirectorImage)
}

// GetQuote returns the quote override
// @Summary Get the quote override
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.CustomQuote}
// @Router /admin/quote [get]
func (c *BrandingController) GetQuote(ctx *gin.Context) {
	q, err := c.quotes.GetOverride(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(q, ""))
}

// UpdateQuote sets or clears the quote override
// @Summary Update the quote override
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CustomQuote true "Quote override"
// @Success 200 {object} dto.APIResponse{data=models.CustomQuote}
// @Router /admin/quote [put]
func (c *BrandingController) UpdateQuote(ctx *gin.Context) {
	var q models.CustomQuote
	if err := middleware.BindJSON(ctx, &q); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.quotes.SaveOverride(ctx.Request.Context(), q); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(q, "Quote updated."))
}
