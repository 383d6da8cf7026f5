package course

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/moringa/darasa-api/utils/apperrors"
	"github.com/moringa/darasa-api/utils/logger"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
)

// MaxThumbnailSize is the largest accepted thumbnail upload
const MaxThumbnailSize = 5 * 1024 * 1024

// ObjectStore is the object storage used for course thumbnails
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// UploadThumbnail handles POST /courses/admin/:id/thumbnail
func (h *CourseHandler) UploadThumbnail(c *fiber.Ctx) error {
	if h.storage == nil {
		return response.FromError(c, apperrors.Unavailable("thumbnail storage is not configured"))
	}
	principal, _ := middleware.GetPrincipal(c)

	id, ok := courseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	ctx := c.UserContext()
	if _, err := h.courses.GetOwnedCourse(ctx, principal.ID(), id); err != nil {
		return response.FromError(c, err)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return response.BadRequest(c, "thumbnail file is required")
	}
	if file.Size > MaxThumbnailSize {
		return response.BadRequest(c, "thumbnail must be at most 5 MB")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return response.BadRequest(c, "thumbnail must be an image")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, err)
	}
	defer src.Close()

	key := fmt.Sprintf("courses/%d/thumbnails/%s%s", id, uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename)))
	url, err := h.storage.UploadFile(ctx, key, src, contentType)
	if err != nil {
		return response.FromError(c, apperrors.Upstream("failed to upload thumbnail", err))
	}

	previous, err := h.courses.SetThumbnail(ctx, principal.ID(), id, url)
	if err != nil {
		_ = h.storage.DeleteFile(ctx, key)
		return response.FromError(c, err)
	}

	if oldKey, ok := h.storage.KeyFromURL(previous); ok && oldKey != key {
		if err := h.storage.DeleteFile(ctx, oldKey); err != nil {
			logger.Warn().Err(err).Str("key", oldKey).Msg("failed to delete previous thumbnail")
		}
	}

	return response.Success(c, fiber.Map{
		"message":   "Thumbnail uploaded successfully",
		"thumbnail": url,
	})
}
