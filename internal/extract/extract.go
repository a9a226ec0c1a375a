package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"jobassist-backend/internal/shared/storage/object"
)

// MimePDF is the only document type accepted for CVs.
const MimePDF = "application/pdf"

var (
	ErrNotPDF    = errors.New("file is not a PDF")
	ErrEmptyText = errors.New("no text could be extracted")
)

// IsPDF reports whether data starts with the PDF magic header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-"))
}

// SidecarKey is where the extracted text of storageKey is cached.
func SidecarKey(storageKey string) string {
	return storageKey + ".extracted.txt"
}

// PDFText extracts the plain text of an in-memory PDF.
// Library used: github.com/ledongthuc/pdf.
func PDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !IsPDF(data) {
		return "", ErrNotPDF
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// StoredText returns the text of a stored PDF, reading the cached sidecar
// when present and writing it after a fresh extraction.
func StoredText(ctx context.Context, store object.ObjectStore, storageKey string) (string, error) {
	if text, ok := readSidecar(ctx, store, storageKey); ok {
		return text, nil
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: read: %w", storageKey, err)
	}
	text, err := PDFText(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}

	// Sidecar write failures only cost a re-extraction next time.
	_, _ = store.SaveWithKey(ctx, SidecarKey(storageKey), "text/plain; charset=utf-8", strings.NewReader(text))
	return text, nil
}

func readSidecar(ctx context.Context, store object.ObjectStore, storageKey string) (string, bool) {
	rc, err := store.Open(ctx, SidecarKey(storageKey))
	if err != nil {
		return "", false
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(string(raw))
	return text, text != ""
}
