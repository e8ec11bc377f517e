package handler

import (
	"path/filepath"
	"strings"

	"quizbook/internal/domain"
	"quizbook/internal/dto"
	"quizbook/internal/logger"
	"quizbook/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const theoryAssetPrefix = "theory/"

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// AssetHandler uploads and removes theory images.
type AssetHandler struct {
	blobs domain.BlobStore
}

// NewAssetHandler creates a new AssetHandler instance
func NewAssetHandler(blobs domain.BlobStore) *AssetHandler {
	return &AssetHandler{blobs: blobs}
}

// Upload godoc
// @Summary Upload a theory image
// @Description Stores the image under theory/<id><ext> and returns its public URL for an image theory block
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.UploadAssetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/assets [post]
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("Multipart field \"file\" is required")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return domain.NewInvalidInputError("Unsupported image type: " + ext)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("Failed to read upload", err)
	}
	defer f.Close()

	path := theoryAssetPrefix + util.NewULID() + ext
	url, err := h.blobs.Upload(c.UserContext(), path, f, fh.Size, contentType)
	if err != nil {
		return domain.NewStoreError("Failed to store image", err)
	}

	logger.Get().Info("Theory image uploaded", zap.String("path", path), zap.Int64("size", fh.Size))
	return c.Status(fiber.StatusCreated).JSON(dto.UploadAssetResponse{Path: path, URL: url})
}

// Delete godoc
// @Summary Delete a theory image
// @Description Removes an image previously returned by the upload endpoint
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param url query string true "Public URL of the image"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/assets [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		return domain.NewInvalidInputError("Query parameter \"url\" is required")
	}
	path, ok := h.blobs.PathFromURL(url)
	if !ok {
		return domain.NewInvalidInputError("URL is not managed by this server")
	}
	if err := h.blobs.Delete(c.UserContext(), path); err != nil {
		return domain.NewStoreError("Failed to delete image", err)
	}

	logger.Get().Info("Theory image deleted", zap.String("path", path))
	return c.JSON(dto.MessageResponse{Message: "deleted"})
}
