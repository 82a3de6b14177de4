package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/domain/model"
)

var (
	ErrInvalidFile    = errors.New("invalid file")
	ErrFileTooLarge   = errors.New("file exceeds the size limit")
	ErrTypeNotAllowed = errors.New("file type is not allowed")
)

// StoredFile records where an upload ended up so the resource row can find
// it again.
type StoredFile struct {
	Storage string
	FileID  string
	FileURL string
	Size    int64
}

// Service uploads resource files to S3 and falls back to local disk when the
// object store is down, so admins can keep publishing during an outage.
type Service struct {
	s3           *S3Storage
	localPath    string
	localBaseURL string
	allowedExts  map[string]struct{}
	maxBytes     int64
	logger       *zap.Logger
}

func NewService(s3 *S3Storage, localPath, localBaseURL string, allowedExts []string, maxBytes int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	exts := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts[ext] = struct{}{}
		}
	}

	return &Service{
		s3:           s3,
		localPath:    localPath,
		localBaseURL: strings.TrimRight(localBaseURL, "/"),
		allowedExts:  exts,
		maxBytes:     maxBytes,
		logger:       logger,
	}
}

func (s *Service) Upload(ctx context.Context, filename string, size int64, body io.Reader) (StoredFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return StoredFile{}, ErrTypeNotAllowed
	}
	if _, ok := s.allowedExts[ext]; !ok {
		return StoredFile{}, ErrTypeNotAllowed
	}
	if size <= 0 {
		return StoredFile{}, ErrInvalidFile
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return StoredFile{}, ErrFileTooLarge
	}

	key := uuid.NewString() + "." + ext
	contentType := mime.TypeByExtension("." + ext)

	if s.s3 != nil {
		stored, err := s.uploadToS3(ctx, key, body, size, contentType)
		if err == nil {
			return stored, nil
		}
		s.logger.Warn("s3 upload failed, falling back to local storage",
			zap.String("key", key),
			zap.Error(err),
		)

		// The failed attempt may have consumed part of the reader. Rewind
		// before writing locally, or the fallback copy comes out truncated.
		seeker, ok := body.(io.Seeker)
		if !ok {
			return StoredFile{}, fmt.Errorf("s3 upload failed and body cannot be rewound: %w", err)
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return StoredFile{}, fmt.Errorf("rewind upload body: %w", err)
		}
	}

	return s.uploadToLocal(key, body, size)
}

func (s *Service) uploadToS3(ctx context.Context, key string, body io.Reader, size int64, contentType string) (StoredFile, error) {
	if err := s.s3.EnsureBucket(ctx); err != nil {
		return StoredFile{}, err
	}
	if err := s.s3.Put(ctx, key, body, size, contentType); err != nil {
		return StoredFile{}, err
	}

	viewURL, err := s.s3.PresignGet(ctx, key, signedURLTTL)
	if err != nil {
		return StoredFile{}, err
	}

	return StoredFile{
		Storage: model.StorageS3,
		FileID:  key,
		FileURL: viewURL,
		Size:    size,
	}, nil
}

func (s *Service) uploadToLocal(key string, body io.Reader, size int64) (StoredFile, error) {
	if s.localPath == "" {
		return StoredFile{}, fmt.Errorf("local storage path is not configured")
	}
	if err := os.MkdirAll(s.localPath, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("create upload dir: %w", err)
	}

	dst := filepath.Join(s.localPath, key)
	f, err := os.Create(dst)
	if err != nil {
		return StoredFile{}, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		os.Remove(dst)
		return StoredFile{}, fmt.Errorf("write upload file: %w", err)
	}
	if written != size {
		os.Remove(dst)
		return StoredFile{}, fmt.Errorf("short upload: wrote %d of %d bytes", written, size)
	}

	return StoredFile{
		Storage: model.StorageLocal,
		FileID:  key,
		FileURL: s.localBaseURL + "/" + key,
		Size:    written,
	}, nil
}

// ViewURL returns a short lived link for the student to open the file. S3
// objects get a fresh presigned URL, local files are served as-is.
func (s *Service) ViewURL(ctx context.Context, res model.Resource) (string, error) {
	switch res.Storage {
	case model.StorageS3:
		if s.s3 == nil {
			return "", fmt.Errorf("s3 storage is unavailable")
		}
		return s.s3.PresignGet(ctx, res.FileID, signedURLTTL)
	case model.StorageLocal:
		return s.localBaseURL + "/" + res.FileID, nil
	default:
		return "", fmt.Errorf("unknown storage kind %q", res.Storage)
	}
}

func (s *Service) Delete(ctx context.Context, storage, fileID string) error {
	switch storage {
	case model.StorageS3:
		if s.s3 == nil {
			return nil
		}
		return s.s3.Delete(ctx, fileID)
	case model.StorageLocal:
		if s.localPath == "" || fileID == "" {
			return nil
		}
		err := os.Remove(filepath.Join(s.localPath, filepath.Base(fileID)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove local file: %w", err)
		}
		return nil
	default:
		return nil
	}
}

// URLTTL is how long a generated view link stays valid.
func (s *Service) URLTTL() time.Duration {
	return signedURLTTL
}
