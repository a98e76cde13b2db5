package repository

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"medigate/domain"

	"github.com/google/uuid"
)

// MaxDocumentSize caps verification uploads at 5 MiB.
const MaxDocumentSize = 5 << 20

var allowedDocumentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type localDocumentStore struct {
	dir string
}

// NewLocalDocumentStore stores verification documents on local disk under
// dir, naming each file with a fresh UUID. The returned reference is the
// file's path relative to the working directory.
func NewLocalDocumentStore(dir string) (domain.DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localDocumentStore{dir: dir}, nil
}

func (s *localDocumentStore) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxDocumentSize {
		return "", domain.ErrDocumentTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the content type from the first bytes rather than trusting the
	// client-declared header.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	head = head[:n]

	ext, ok := allowedDocumentTypes[http.DetectContentType(head)]
	if !ok {
		return "", domain.ErrDocumentType
	}

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		os.Remove(path)
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
