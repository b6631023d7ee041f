package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

// MaxImageSize bounds a single uploaded image.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type MediaUseCase struct {
	storage ImageStorage
	logger  *zap.Logger
}

func NewMediaUseCase(storage ImageStorage, logger *zap.Logger) *MediaUseCase {
	return &MediaUseCase{storage: storage, logger: logger.Named("MediaUseCase")}
}

// UploadImage sniffs the content type from the first bytes and stores the
// image, returning its public URL.
func (uc *MediaUseCase) UploadImage(ctx context.Context, s *auth.Session, r io.Reader, size int64) (string, error) {
	if err := auth.Authorize(s); err != nil {
		return "", err
	}
	if uc.storage == nil {
		return "", entity.NewError(entity.ErrUnavailable, "Image uploads are not configured")
	}
	if size <= 0 {
		return "", entity.NewValidationError("file", "File is empty")
	}
	if size > MaxImageSize {
		return "", entity.NewValidationError("file", "File size exceeds 5MB limit")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("MediaUseCase.UploadImage: read: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", entity.NewValidationError("file", "Only JPEG, PNG, GIF and WEBP images are allowed")
	}

	url, err := uc.storage.Upload(ctx, io.MultiReader(bytes.NewReader(head), r), size, contentType, ext)
	if err != nil {
		uc.logger.Error("Image upload failed", zap.Error(err), zap.String("userID", s.UserID))
		return "", fmt.Errorf("MediaUseCase.UploadImage: %w", err)
	}
	uc.logger.Info("Image uploaded", zap.String("userID", s.UserID), zap.String("url", url))
	return url, nil
}
