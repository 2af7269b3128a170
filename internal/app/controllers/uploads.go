package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/middleware"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/imaging"
)

// imageFromRequest reads an image either as a multipart "photo" file or as
// a JSON {"image": "..."} body holding a URL or data URL
func imageFromRequest(ctx *gin.Context) (string, error) {
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fileHeader, err := ctx.FormFile("photo")
		if err != nil {
			return "", apperrors.NewValidationError().Add("photo", "Photo required")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()

		src, err := imaging.FromReader(file)
		if err != nil {
			if errors.Is(err, imaging.ErrTooLarge) {
				return "", apperrors.NewValidationError().Add("photo", "Image is too large")
			}
			return "", apperrors.NewValidationError().Add("photo", "Please upload an image file")
		}
		return src, nil
	}

	var req dto.PhotoRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		return "", err
	}
	return req.Image, nil
}
