package repository

import (
	"context"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

type ReportFilter struct {
	Status entity.ReportStatus
	Page   entity.PageRequest
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, int64, error)
	// Review stores the moderation outcome (status, notes, reviewer, time).
	Review(ctx context.Context, report *entity.Report) error
	CountByStatus(ctx context.Context, status entity.ReportStatus) (int64, error)
}
