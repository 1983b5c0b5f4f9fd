package mock

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/nasserq/raqeeb/internal/storage"
)

// Compile-time interface check
var _ storage.FileStorage = (*FileStorage)(nil)

// FileStorage is a mock implementation of storage.FileStorage.
type FileStorage struct {
	SaveFn   func(ctx context.Context, file *multipart.FileHeader) (string, error)
	DeleteFn func(ctx context.Context, filename string) error
	GetURLFn func(filename string) string

	// Counter for generating fallback filenames
	nextID int
}

func (s *FileStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, file)
	}
	s.nextID++
	return fmt.Sprintf("mock-file-%d", s.nextID), nil
}

func (s *FileStorage) Delete(ctx context.Context, filename string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, filename)
	}
	return nil
}

func (s *FileStorage) GetURL(filename string) string {
	if s.GetURLFn != nil {
		return s.GetURLFn(filename)
	}
	return "http://localhost/uploads/" + filename
}
