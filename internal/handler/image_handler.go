package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nareshwadi/market/market-backend/internal/middleware"
	"github.com/nareshwadi/market/market-backend/internal/service"
)

// ImageHandler handles product photo uploads for the farmer portal
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ImageUploadResponse represents the stored photo variants in API responses
type ImageUploadResponse struct {
	ID            string `json:"id"`
	ThumbnailPath string `json:"thumbnailPath"`
	DisplayPath   string `json:"displayPath"`
	OriginalPath  string `json:"originalPath"`
}

// UploadImage handles POST /api/v1/seller/products/:id/image
// Expects a multipart form with an "image" file field.
func (h *ImageHandler) UploadImage(c echo.Context) error {
	if !h.imageService.IsEnabled() {
		return NewConflictError(c, "Image storage is not configured")
	}

	sellerID := middleware.GetUserID(c)
	productID := c.Param("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return NewValidationError(c, "Missing image file", []ValidationError{{Field: "image", Message: "Required"}})
	}

	if fileHeader.Size > service.MaxImageSize {
		return NewValidationError(c, service.ErrImageTooLarge.Error(), nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read upload")
	}

	meta, err := h.imageService.ProcessAndUpload(c.Request().Context(), sellerID, productID, data, fileHeader.Filename)
	if err != nil {
		switch err {
		case service.ErrImageTooLarge, service.ErrInvalidFormat, service.ErrImageTooSmall, service.ErrInvalidImageData:
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("product_id", productID).Msg("Failed to process image")
		return NewInternalError(c, "Failed to process image")
	}

	return c.JSON(http.StatusCreated, ImageUploadResponse{
		ID:            meta.ID,
		ThumbnailPath: meta.ThumbnailPath,
		DisplayPath:   meta.DisplayPath,
		OriginalPath:  meta.OriginalPath,
	})
}

// ImageURLResponse carries a temporary download URL
type ImageURLResponse struct {
	URL string `json:"url"`
}

// GetImageURL handles GET /api/v1/images/url?path=...
func (h *ImageHandler) GetImageURL(c echo.Context) error {
	if !h.imageService.IsEnabled() {
		return NewConflictError(c, "Image storage is not configured")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Object path is required", []ValidationError{{Field: "path", Message: "Required"}})
	}

	url, err := h.imageService.PresignedURL(c.Request().Context(), objectPath)
	if err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Failed to presign image URL")
		return NewInternalError(c, "Failed to generate image URL")
	}
	return c.JSON(http.StatusOK, ImageURLResponse{URL: url})
}

// DeleteImage handles DELETE /api/v1/seller/images?path=...
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	if !h.imageService.IsEnabled() {
		return NewConflictError(c, "Image storage is not configured")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Object path is required", []ValidationError{{Field: "path", Message: "Required"}})
	}

	if err := h.imageService.DeleteAllVariants(c.Request().Context(), objectPath); err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Failed to delete image")
		return NewInternalError(c, "Failed to delete image")
	}
	return c.NoContent(http.StatusNoContent)
}
