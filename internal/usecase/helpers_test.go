package usecase

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testLogger() *zap.Logger { return zap.NewNop() }

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, payload any) error {
	return m.Called(ctx, subject, payload).Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendVerification(ctx context.Context, to, name, link string) error {
	return m.Called(ctx, to, name, link).Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	return m.Called(ctx, to, name, link).Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, r io.Reader, size int64, contentType, ext string) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, data, size, contentType, ext)
	return args.String(0), args.Error(1)
}

func session(id string, role entity.Role) *auth.Session {
	return &auth.Session{
		UserID:      id,
		Email:       id + "@example.com",
		Name:        "User " + id,
		Role:        role,
		Permissions: entity.DefaultPermissions(),
	}
}

func ptr[T any](v T) *T { return &v }
