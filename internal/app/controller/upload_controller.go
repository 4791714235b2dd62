package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rahat/tastybites-backend/internal/errors"
	"github.com/rahat/tastybites-backend/internal/middleware"
	"github.com/rahat/tastybites-backend/internal/storage"
)

// UploadController issues presigned upload URLs for menu images and
// expense receipts.
type UploadController struct {
	storage *storage.S3Storage
}

// NewUploadController creates a new upload controller. storage may be
// nil when S3 is not configured.
func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3}
}

type presignRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Kind        string `json:"kind" binding:"required"` // "menu" or "receipt"
}

// Presign handles POST /api/uploads/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.storage == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadFailed,
			"File uploads are not configured")
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "content_type and kind are required")
		return
	}

	var prefix string
	switch req.Kind {
	case "menu":
		prefix = "menu"
	case "receipt":
		prefix = "receipts"
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "kind must be menu or receipt")
		return
	}

	upload, err := ctrl.storage.PresignUpload(c.Request.Context(), prefix, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFileType) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "This file type is not allowed")
			return
		}
		log.Error("Failed to presign upload", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed,
			"Failed to prepare upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload": upload})
}
