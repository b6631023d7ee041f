package repository

import (
	"context"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type AlertFilter struct {
	Search  string
	Type    entity.AlertType
	Urgency entity.Urgency
	Status  entity.AlertStatus
	City    string
	// MaxRadiusKm keeps alerts whose own coverage radius does not exceed it.
	MaxRadiusKm float64
	Near        *GeoFilter
	Page        entity.PageRequest
}

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	Update(ctx context.Context, alert *entity.Alert) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, int64, error)
}
