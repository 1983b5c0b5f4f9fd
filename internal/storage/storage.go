// Package storage stores uploaded files behind the FileStorage interface.
// Inspection photos, CDR attachments, and signature images all go through
// it; providers are local disk for dev and S3 for production.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type FileStorage interface {
	// Save stores the upload under a generated key and returns the key.
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)

	// Delete removes a stored file by key.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}

// StorageConfig selects and configures a provider.
type StorageConfig struct {
	Provider  string // "local" or "s3"
	LocalPath string
	LocalURL  string
	S3Bucket  string
	S3Region  string
	S3BaseURL string // CloudFront or S3 base URL
}

// NewFileStorage builds the configured provider. Unknown providers fall
// back to local disk.
func NewFileStorage(ctx context.Context, logger *slog.Logger, cfg StorageConfig) (FileStorage, error) {
	switch cfg.Provider {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		logger.Info("initialized s3 storage",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region))

		return NewS3Storage(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL), nil

	default:
		store, err := NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}

		logger.Info("initialized local storage",
			slog.String("path", cfg.LocalPath),
			slog.String("url", cfg.LocalURL))

		return store, nil
	}
}

// fileKey generates a collision-free key, grouped by upload month so the
// store stays browsable alongside the monthly statements.
func fileKey(originalName string, now time.Time) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.New().String(), ext)
}

// LocalStorage keeps files on local disk. Dev and test provider.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

func (s *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := fileKey(fileHeader.Filename, time.Now())

	destPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key))); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(key string) string {
	return s.baseURL + "/" + path.Clean(key)
}
