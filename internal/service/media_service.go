package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hiresift/hiresift-backend/internal/config"
)

// Upload errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// resumeExtensions are the accepted resume formats. Content extraction
// happens in the external resume-analysis service, so only the raw
// file is kept here.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// MediaService stores uploaded resume files on local disk.
type MediaService struct {
	cfg *config.Config
}

// NewMediaService creates a new MediaService and ensures the upload
// directory exists.
func NewMediaService(cfg *config.Config) (*MediaService, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &MediaService{cfg: cfg}, nil
}

// SaveResume persists an uploaded resume and returns the stored
// filename.
func (s *MediaService) SaveResume(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.cfg.MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !resumeExtensions[ext] {
		return "", ErrUnsupportedFileType
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.cfg.UploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.cfg.MaxUploadBytes+1)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return filename, nil
}

// ResumePath resolves a stored filename to its on-disk path.
func (s *MediaService) ResumePath(filename string) string {
	return filepath.Join(s.cfg.UploadDir, filename)
}
