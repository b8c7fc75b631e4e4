package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fitcheckapp/backend/internal/auth"
	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/logger"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/fitcheckapp/backend/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20 // 10MB

// UploadImage stores an image in S3 and records it, returning the
// image ID the client submits with the eventual post
// POST /api/images (multipart, authenticated)
func (h *Handlers) UploadImage(c *gin.Context) {
	clerkUserID, ok := util.GetClerkUserIDFromContext(c)
	if !ok {
		return
	}

	user, err := auth.ResolveUser(clerkUserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			util.RespondNotFound(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to look up user")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		util.RespondBadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		util.RespondBadRequest(c, "image exceeds the 10MB limit")
		return
	}
	if !util.IsValidImageFile(fileHeader.Filename) {
		util.RespondBadRequest(c, "file must be a jpg, png, gif or webp image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondInternalError(c, "failed to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		util.RespondBadRequest(c, "content type must be an image")
		return
	}

	result, err := h.images.UploadImage(c.Request.Context(), data, user.ID, fileHeader.Filename)
	if err != nil {
		logger.ErrorWithFields("image upload failed",
			zap.String("user_id", user.ID), zap.Error(err))
		util.RespondInternalError(c, "failed to store image")
		return
	}

	image := models.Image{
		UserID:      user.ID,
		S3Key:       result.Key,
		URL:         result.URL,
		ContentType: contentType,
		Size:        result.Size,
	}
	if err := database.DB.Create(&image).Error; err != nil {
		// Best-effort cleanup of the orphaned object
		if delErr := h.images.DeleteFile(c.Request.Context(), result.Key); delErr != nil {
			logger.WarnWithFields("failed to clean up orphaned upload",
				zap.String("s3_key", result.Key), zap.Error(delErr))
		}
		util.RespondInternalError(c, "failed to record image")
		return
	}

	logger.InfoWithFields("image uploaded",
		zap.String("image_id", image.ID),
		zap.String("user_id", user.ID),
		zap.Int64("size", image.Size))

	c.JSON(http.StatusOK, gin.H{
		"image_id": image.ID,
		"url":      image.URL,
	})
}
