package repository

import (
	"context"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type TestimonialFilter struct {
	Approved *bool
	Page     entity.PageRequest
}

type TestimonialRepository interface {
	Create(ctx context.Context, t *entity.Testimonial) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Testimonial, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Testimonial, error)
	Update(ctx context.Context, t *entity.Testimonial) error
	SetApproval(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	ListApproved(ctx context.Context, limit int) ([]*entity.Testimonial, error)
	List(ctx context.Context, filter TestimonialFilter) ([]*entity.Testimonial, int64, error)
	CountPending(ctx context.Context) (int64, error)
}
