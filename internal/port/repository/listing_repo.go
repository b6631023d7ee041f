package repository

import (
	"context"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type AdoptionFilter struct {
	PetType      string
	City         string
	Status       entity.AdoptionStatus
	Gender       string
	Size         string
	GoodWithKids *bool
	GoodWithPets *bool
	MaxFee       *float64
	Search       string
	PostedBy     string
	Page         entity.PageRequest
}

type AdoptionRepository interface {
	Create(ctx context.Context, listing *entity.AdoptionListing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.AdoptionListing, error)
	List(ctx context.Context, filter AdoptionFilter) ([]*entity.AdoptionListing, int64, error)
	// AddApplication appends unless the applicant already applied
	// (ErrDuplicate) or the listing is no longer available (ErrConditionFailed).
	AddApplication(ctx context.Context, id string, app entity.Application) error
	UpdateStatus(ctx context.Context, id string, status entity.AdoptionStatus, adoptedBy string) error
	Delete(ctx context.Context, id string) error
}

type FosterFilter struct {
	PetType  string
	City     string
	Status   entity.FosterStatus
	Duration entity.FosterDuration
	Search   string
	PostedBy string
	Page     entity.PageRequest
}

type FosterRepository interface {
	Create(ctx context.Context, listing *entity.FosterListing) (string, error)
	GetByID(ctx context.Context, id string) (*entity.FosterListing, error)
	List(ctx context.Context, filter FosterFilter) ([]*entity.FosterListing, int64, error)
	AddApplication(ctx context.Context, id string, app entity.Application) error
	// AssignParent sets the foster parent on an available listing.
	AssignParent(ctx context.Context, id string, parent entity.FosterParent) error
	UpdateStatus(ctx context.Context, id string, status entity.FosterStatus) error
	Delete(ctx context.Context, id string) error
}
