package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/media"
	"github.com/BruksfildServices01/studio-booking/internal/storage"
)

func formImage(c *gin.Context, fields ...string) (*multipart.FileHeader, bool) {
	for _, field := range fields {
		if fh, err := c.FormFile(field); err == nil {
			return fh, true
		}
	}
	return nil, false
}

// uploadImage takes the first of fields from a multipart form, converts it to
// WebP and stores it under prefix. It writes the error response itself.
func uploadImage(c *gin.Context, store storage.ImageStore, prefix, name string, maxSide int, fields ...string) (string, bool) {
	if store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "image storage is not configured")
		return "", false
	}

	fh, ok := formImage(c, fields...)
	if !ok {
		httperr.BadRequest(c, "missing_file", "please upload an image")
		return "", false
	}
	file, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return "", false
	}
	defer file.Close()

	data, err := media.ToWebP(file, maxSide)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			httperr.BadRequest(c, "invalid_image", err.Error())
			return "", false
		}
		httperr.Respond(c, err)
		return "", false
	}

	key := fmt.Sprintf("%s/%s-%d.webp", prefix, name, time.Now().UnixNano())
	url, err := store.Put(c.Request.Context(), key, data, media.ContentType)
	if err != nil {
		httperr.Respond(c, err)
		return "", false
	}
	return url, true
}

// removeStoredImage deletes an image previously written by the store. Failures
// are only logged since the database already points elsewhere.
func removeStoredImage(c *gin.Context, store storage.ImageStore, url string) {
	if store == nil || url == "" {
		return
	}
	key, ok := store.KeyFromURL(url)
	if !ok {
		return
	}
	if err := store.Delete(c.Request.Context(), key); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to delete image", "key", key, "error", err)
	}
}
