package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestMediaUseCase_UploadImage(t *testing.T) {
	ctx := context.Background()
	s := session("u1", entity.RoleUser)

	t.Run("NotConfigured", func(t *testing.T) {
		uc := NewMediaUseCase(nil, testLogger())
		_, err := uc.UploadImage(ctx, s, bytes.NewReader(pngHeader), int64(len(pngHeader)))
		assert.ErrorIs(t, err, entity.ErrUnavailable)
	})

	t.Run("PNG", func(t *testing.T) {
		storage := new(MockImageStorage)
		uc := NewMediaUseCase(storage, testLogger())
		storage.On("Upload", ctx, pngHeader, int64(len(pngHeader)), "image/png", ".png").
			Return("http://cdn.local/images/a.png", nil).Once()

		url, err := uc.UploadImage(ctx, s, bytes.NewReader(pngHeader), int64(len(pngHeader)))
		require.NoError(t, err)
		assert.Equal(t, "http://cdn.local/images/a.png", url)
		storage.AssertExpectations(t)
	})

	t.Run("RejectsText", func(t *testing.T) {
		storage := new(MockImageStorage)
		uc := NewMediaUseCase(storage, testLogger())
		body := []byte("just some text")
		_, err := uc.UploadImage(ctx, s, bytes.NewReader(body), int64(len(body)))
		assert.ErrorIs(t, err, entity.ErrValidation)
		storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TooLarge", func(t *testing.T) {
		uc := NewMediaUseCase(new(MockImageStorage), testLogger())
		_, err := uc.UploadImage(ctx, s, bytes.NewReader(pngHeader), MaxImageSize+1)
		assert.ErrorIs(t, err, entity.ErrValidation)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		storage := new(MockImageStorage)
		uc := NewMediaUseCase(storage, testLogger())
		storage.On("Upload", ctx, mock.Anything, mock.Anything, "image/png", ".png").Return("", errors.New("bucket gone")).Once()
		_, err := uc.UploadImage(ctx, s, bytes.NewReader(pngHeader), int64(len(pngHeader)))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, entity.ErrValidation)
	})

	t.Run("Anonymous", func(t *testing.T) {
		uc := NewMediaUseCase(new(MockImageStorage), testLogger())
		_, err := uc.UploadImage(ctx, nil, bytes.NewReader(pngHeader), int64(len(pngHeader)))
		assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	})
}
