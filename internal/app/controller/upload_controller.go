package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
	"github.com/jwtpizza/pizza-service/internal/storage"
)

// MenuImageStorage presigns uploads of menu images.
type MenuImageStorage interface {
	PresignMenuImage(ctx context.Context, filename, contentType string) (*storage.PresignedUpload, error)
}

type UploadController struct {
	storage MenuImageStorage
}

func NewUploadController(storage MenuImageStorage) *UploadController {
	return &UploadController{storage: storage}
}

type MenuImageRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignMenuImage lets an admin upload a menu image straight to S3
// POST /api/order/menu/image
func (ctrl *UploadController) PresignMenuImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	caller, _ := middleware.GetUser(c)
	if !caller.IsRole(model.RoleAdmin) {
		apperrors.RespondWithMessage(c, http.StatusForbidden, "unable to upload menu image")
		return
	}

	var req MenuImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "filename and contentType are required")
		return
	}

	if err := storage.ValidateContentType(req.ContentType, storage.AllowedImageTypes); err != nil {
		log.Warn("Invalid content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, "only image files are allowed (PNG, JPEG, WEBP, GIF)")
		return
	}

	upload, err := ctrl.storage.PresignMenuImage(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithMessage(c, http.StatusInternalServerError, "failed to generate upload URL")
		return
	}

	log.Info("Menu image upload URL generated", map[string]interface{}{
		"key": upload.Key,
	})
	c.JSON(http.StatusOK, upload)
}
