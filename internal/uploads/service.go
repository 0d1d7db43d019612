package uploads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeyShea/travel-map/internal/db"

	"github.com/google/uuid"
)

var (
	ErrNotAnImage        = errors.New("file must be an image (jpeg, png, webp, or gif)")
	ErrInvalidImage      = errors.New("file is not a valid image")
	ErrStoreUnconfigured = errors.New("object storage is not configured")
)

var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type Service struct {
	db    db.Querier
	store ObjectStore
}

func NewService(db db.Querier, store ObjectStore) *Service {
	return &Service{db: db, store: store}
}

// UploadImage optimizes the file, writes it to the object store under a
// per-user key and records the upload. The store write happens outside
// any database transaction so a slow network call never pins one.
func (s *Service) UploadImage(ctx context.Context, userID int64, folder, contentType string, data []byte) (string, error) {
	if s.store == nil {
		return "", ErrStoreUnconfigured
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedImageContentTypes[contentType] {
		return "", ErrNotAnImage
	}

	optimized, optimizedType, ext, err := optimizeImage(data, contentType)
	if err != nil {
		return "", err
	}

	safeFolder := strings.Trim(folder, "/")
	if safeFolder == "" {
		safeFolder = "trips"
	}
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	key := fmt.Sprintf("%s/%d/%s-%s%s", safeFolder, userID, timestamp, uuid.New().String(), ext)

	url, err := s.store.Put(ctx, key, optimizedType, optimized)
	if err != nil {
		return "", err
	}

	if _, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), userID, url, "image"); err != nil {
		return "", err
	}

	return url, nil
}
