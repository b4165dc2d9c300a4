package handlers

import (
	"net/http"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/metrics"
	"github.com/01moynul/storefront-golang/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadFile handles POST /v1/uploads (Staff Only).
// It stores the multipart "file" part and returns its public URL.
func (h *Handlers) UploadFile(c *gin.Context) {
	log := logger.FromContext(c)

	// 1. Get the file from the request
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Validation("file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	// 2. Generate a unique object name (uuid hex + original name)
	name := storage.ObjectName(fileHeader.Filename)

	// 3. Store it
	url, err := h.Uploader.Upload(c.Request.Context(), name, file, fileHeader.Header.Get("Content-Type"))
	metrics.RecordUpload(h.Uploader.Driver(), err)
	if err != nil {
		log.Warn("Upload failed", zap.String("driver", h.Uploader.Driver()), zap.String("name", name), zap.Error(err))
		respondError(c, apperr.Upstream(err.Error(), err))
		return
	}

	// 4. Return the public URL
	log.Info("File uploaded", zap.String("name", name), zap.Int64("size", fileHeader.Size))
	c.JSON(http.StatusOK, gin.H{"url": url})
}
