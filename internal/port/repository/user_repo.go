package repository

import (
	"context"
	"time"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type UserFilter struct {
	Role    entity.Role
	Active  *bool
	Blocked *bool
	Search  string
	Page    entity.PageRequest
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int64, error)
	SetBlocked(ctx context.Context, user *entity.User) error
	ClearBlockedBy(ctx context.Context, blockerID string) (int64, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Stats(ctx context.Context, since time.Time) (*entity.UserStats, error)
}
