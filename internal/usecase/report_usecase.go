package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

type ReportUseCase struct {
	reports   repository.ReportRepository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportUseCase(reports repository.ReportRepository, publisher EventPublisher, logger *zap.Logger) *ReportUseCase {
	return &ReportUseCase{reports: reports, publisher: publisher, logger: logger.Named("ReportUseCase"), now: time.Now}
}

type CreateReportInput struct {
	TargetType  entity.ReportTarget
	TargetID    string
	Reason      string
	Description string
}

func (uc *ReportUseCase) Create(ctx context.Context, s *auth.Session, in CreateReportInput) (*entity.Report, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	verr := &entity.ValidationError{Fields: map[string]string{}}
	if !in.TargetType.IsValid() {
		verr.Fields["targetType"] = "targetType must be one of post, comment, alert, user, listing"
	}
	if strings.TrimSpace(in.TargetID) == "" {
		verr.Fields["targetId"] = "targetId is required"
	}
	if strings.TrimSpace(in.Reason) == "" {
		verr.Fields["reason"] = "Reason is required"
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	now := uc.now().UTC()
	report := &entity.Report{
		ReporterID:  s.UserID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Reason:      strings.TrimSpace(in.Reason),
		Description: strings.TrimSpace(in.Description),
		Status:      entity.ReportPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := uc.reports.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("ReportUseCase.Create: %w", err)
	}
	report.ID = id
	publish(ctx, uc.publisher, uc.logger, SubjectReportCreated, ReportEvent{
		ReportID: id, ReporterID: s.UserID, TargetType: report.TargetType, TargetID: report.TargetID, At: now,
	})
	return report, nil
}

func (uc *ReportUseCase) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, entity.Pagination, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return nil, entity.Pagination{}, entity.NewValidationError("status", "Invalid report status")
	}
	reports, total, err := uc.reports.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("ReportUseCase.List: %w", err)
	}
	return reports, entity.NewPagination(f.Page, total), nil
}

type ReviewReportInput struct {
	ReportID   string
	Status     entity.ReportStatus
	AdminNotes string
}

// Review applies a moderation decision. Resolved and dismissed reports are
// final.
func (uc *ReportUseCase) Review(ctx context.Context, s *auth.Session, in ReviewReportInput) (*entity.Report, error) {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if !in.Status.IsValid() {
		return nil, entity.NewValidationError("status", "Invalid report status")
	}
	report, err := uc.reports.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, repoErr(err, "Report")
	}
	if !report.Status.CanTransitionTo(in.Status) {
		return nil, entity.NewError(entity.ErrInvalidState,
			fmt.Sprintf("Cannot change report status from %s to %s", report.Status, in.Status))
	}
	now := uc.now().UTC()
	report.Status = in.Status
	report.AdminNotes = strings.TrimSpace(in.AdminNotes)
	report.ReviewedBy = s.UserID
	report.ReviewedAt = &now
	report.UpdatedAt = now
	if err := uc.reports.Review(ctx, report); err != nil {
		return nil, repoErr(err, "Report")
	}
	uc.logger.Info("Report reviewed", zap.String("reportID", report.ID), zap.String("status", string(report.Status)))
	return report, nil
}
