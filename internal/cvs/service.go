package cvs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"jobassist-backend/internal/extract"
	"jobassist-backend/internal/shared/storage/object"
	"jobassist-backend/internal/shared/telemetry"
)

const (
	// MaxUploadBytes bounds a CV upload.
	MaxUploadBytes = 10 << 20

	// DownloadPath is handed out when the store cannot presign URLs.
	DownloadPath = "/api/v1/user/cv/download"

	signedURLTTL = time.Hour
)

// Service manages the per-user stored CV.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Provider string
	Now      func() time.Time
}

// NewService constructs a Service.
func NewService(store object.ObjectStore, repo Repo, provider string) *Service {
	return &Service{Store: store, Repo: repo, Provider: provider, Now: time.Now}
}

// Upload stores a new CV, replacing and deleting any previous one.
func (s *Service) Upload(ctx context.Context, userID, fileName string, data []byte) (CVFile, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return CVFile{}, ErrInvalidInput
	}
	if len(data) > MaxUploadBytes {
		return CVFile{}, ErrFileTooLarge
	}
	if !extract.IsPDF(data) {
		return CVFile{}, extract.ErrNotPDF
	}

	prev, err := s.Repo.Get(ctx, userID)
	hasPrev := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return CVFile{}, fmt.Errorf("load current cv: %w", err)
	}

	key, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return CVFile{}, fmt.Errorf("store cv: %w", err)
	}

	cv := CVFile{
		UserID:          userID,
		FileName:        fileName,
		MimeType:        extract.MimePDF,
		SizeBytes:       size,
		StorageProvider: s.Provider,
		StorageKey:      key,
		UploadedAt:      s.now(),
	}
	if err := s.Repo.Upsert(ctx, cv); err != nil {
		_ = s.Store.Delete(ctx, key)
		return CVFile{}, fmt.Errorf("save cv metadata: %w", err)
	}

	if hasPrev && prev.StorageKey != key {
		s.deleteObjects(ctx, prev.StorageKey)
	}
	return cv, nil
}

// Get returns the user's CV metadata.
func (s *Service) Get(ctx context.Context, userID string) (CVFile, error) {
	if userID == "" {
		return CVFile{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, userID)
}

// URL returns a time-limited link to the CV, or the API download path when
// the store cannot sign URLs.
func (s *Service) URL(ctx context.Context, cv CVFile) (string, error) {
	presigner, ok := s.Store.(object.Presigner)
	if !ok {
		return DownloadPath, nil
	}
	url, err := presigner.PresignGet(ctx, cv.StorageKey, signedURLTTL)
	if errors.Is(err, object.ErrPresignUnsupported) {
		return DownloadPath, nil
	}
	if err != nil {
		return "", fmt.Errorf("presign cv: %w", err)
	}
	return url, nil
}

// Download returns the stored PDF bytes.
func (s *Service) Download(ctx context.Context, userID string) (CVFile, []byte, error) {
	cv, err := s.Get(ctx, userID)
	if err != nil {
		return CVFile{}, nil, err
	}
	rc, err := s.Store.Open(ctx, cv.StorageKey)
	if err != nil {
		return CVFile{}, nil, fmt.Errorf("open cv: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return CVFile{}, nil, fmt.Errorf("read cv: %w", err)
	}
	return cv, data, nil
}

// Text returns the extracted text of the user's CV.
func (s *Service) Text(ctx context.Context, userID string) (string, error) {
	cv, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	text, err := extract.StoredText(ctx, s.Store, cv.StorageKey)
	if err != nil {
		return "", err
	}
	if cv.ExtractedTextKey == "" {
		if err := s.Repo.SetExtractedKey(ctx, userID, cv.StorageKey, extract.SidecarKey(cv.StorageKey)); err != nil {
			telemetry.Warn("cv.extracted_key_failed", map[string]any{"user_id": userID, "error": err})
		}
	}
	return text, nil
}

func (s *Service) deleteObjects(ctx context.Context, key string) {
	for _, k := range []string{key, extract.SidecarKey(key)} {
		if err := s.Store.Delete(ctx, k); err != nil {
			telemetry.Warn("cv.delete_previous_failed", map[string]any{"storage_key": k, "error": err})
		}
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
