package repository

import (
	"context"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type VetFilter struct {
	Specialization string
	Service        string
	Emergency      bool
	Is24Hours      bool
	City           string
	State          string
	Verified       *bool
	Search         string
	Near           *GeoFilter
	Page           entity.PageRequest
}

type VetDirectoryRepository interface {
	Create(ctx context.Context, entry *entity.VetDirectoryEntry) (string, error)
	GetByID(ctx context.Context, id string) (*entity.VetDirectoryEntry, error)
	GetByVetID(ctx context.Context, vetID string) (*entity.VetDirectoryEntry, error)
	Update(ctx context.Context, entry *entity.VetDirectoryEntry) error
	AddRating(ctx context.Context, id string, score int) (*entity.VetDirectoryEntry, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter VetFilter) ([]*entity.VetDirectoryEntry, int64, error)
}
