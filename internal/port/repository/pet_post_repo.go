package repository

import (
	"context"
	"time"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

// GeoFilter restricts results to RadiusKm around a point.
type GeoFilter struct {
	Longitude float64
	Latitude  float64
	RadiusKm  float64
}

type PetPostFilter struct {
	PostType entity.PostType
	Status   entity.PostStatus
	PetType  string
	City     string
	UserID   string
	Search   string
	Near     *GeoFilter
	Page     entity.PageRequest
}

type PetPostRepository interface {
	Create(ctx context.Context, post *entity.PetPost) (string, error)
	GetByID(ctx context.Context, id string) (*entity.PetPost, error)
	// IncrementViews atomically bumps the view counter and returns the post
	// as stored after the increment.
	IncrementViews(ctx context.Context, id string) (*entity.PetPost, error)
	List(ctx context.Context, filter PetPostFilter) ([]*entity.PetPost, int64, error)
	// AddComment appends to an active post only; otherwise ErrConditionFailed.
	AddComment(ctx context.Context, id string, comment entity.PostComment) (*entity.PetPost, error)
	// Resolve moves an active post to resolved; otherwise ErrConditionFailed.
	Resolve(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error)
	// Close moves an active post to closed; otherwise ErrConditionFailed.
	Close(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[entity.PostStatus]int64, error)
}
