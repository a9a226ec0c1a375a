package cvs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobassist-backend/internal/extract"
	"jobassist-backend/internal/shared/server/respond"
)

// TextSource resolves the text of a user's stored CV.
type TextSource interface {
	Text(ctx context.Context, userID string) (string, error)
}

// RequestText returns the text of the optional multipart "cv" upload on the
// request, falling back to the user's stored CV.
func RequestText(c *gin.Context, src TextSource, userID string) (string, error) {
	fileHeader, err := c.FormFile("cv")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return src.Text(c.Request.Context(), userID)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	if fileHeader.Size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	if len(data) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}
	return extract.PDFText(c.Request.Context(), data)
}

// RespondTextError writes the error response for a failed RequestText.
func RespondTextError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusBadRequest, "cv_required", "Please upload a CV first", nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrFileTooLarge.Error(), nil)
	case errors.Is(err, extract.ErrNotPDF):
		respond.Error(c, http.StatusBadRequest, "validation_error", "CV must be a PDF file", nil)
	case errors.Is(err, extract.ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Could not read any text from the CV", nil)
	case errors.Is(err, ErrInvalidUpload):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Unable to read the uploaded CV", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to read CV", nil)
	}
}
