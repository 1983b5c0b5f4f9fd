package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// UploadResponse is returned when a file upload succeeds.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// handleUploadFile accepts multipart uploads for inspection photos, CDR
// attachments, and signature images. The returned filename is what the
// client embeds in the owning entity.
func (s *Server) handleUploadFile(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	if s.fileStorage == nil {
		return raqeeb.Internal("File storage is not configured", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return raqeeb.Invalid("Missing file field")
	}

	// 10 MB cap, matching what the mobile clients produce.
	const maxUploadSize = 10 << 20
	if fileHeader.Size > maxUploadSize {
		return raqeeb.Invalid("File exceeds the 10 MB upload limit")
	}

	filename, err := s.fileStorage.Save(ctx, fileHeader)
	if err != nil {
		s.log(c).Error("file upload failed", slog.String("error", err.Error()))
		return raqeeb.Internal("Failed to store file", err)
	}

	s.log(c).Info("file uploaded",
		slog.String("filename", filename),
		slog.Int64("size", fileHeader.Size),
	)

	return RespondCreated(c, UploadResponse{
		Filename: filename,
		URL:      s.fileStorage.GetURL(filename),
	})
}
