package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository/mocks"
)

func TestReportUseCase_Create(t *testing.T) {
	ctx := context.Background()
	reports := new(mocks.ReportRepository)
	pub := new(MockPublisher)
	uc := NewReportUseCase(reports, pub, testLogger())
	uc.now = clock
	s := session("u1", entity.RoleUser)

	_, err := uc.Create(ctx, s, CreateReportInput{TargetType: "planet", TargetID: "x", Reason: "spam"})
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = uc.Create(ctx, s, CreateReportInput{TargetType: entity.ReportTargetPost, TargetID: "p1"})
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = uc.Create(ctx, nil, CreateReportInput{TargetType: entity.ReportTargetPost, TargetID: "p1", Reason: "spam"})
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)

	reports.On("Create", ctx, mock.MatchedBy(func(r *entity.Report) bool {
		return r.Status == entity.ReportPending && r.ReporterID == "u1"
	})).Return("r1", nil).Once()
	pub.On("Publish", ctx, SubjectReportCreated, mock.AnythingOfType("usecase.ReportEvent")).Return(nil).Once()

	report, err := uc.Create(ctx, s, CreateReportInput{TargetType: entity.ReportTargetPost, TargetID: "p1", Reason: " spam "})
	require.NoError(t, err)
	assert.Equal(t, "r1", report.ID)
	assert.Equal(t, "spam", report.Reason)
	pub.AssertExpectations(t)
}

func TestReportUseCase_Review(t *testing.T) {
	ctx := context.Background()
	admin := session("admin1", entity.RoleAdmin)

	t.Run("PendingToResolved", func(t *testing.T) {
		reports := new(mocks.ReportRepository)
		uc := NewReportUseCase(reports, nil, testLogger())
		uc.now = clock
		reports.On("GetByID", ctx, "r1").Return(&entity.Report{ID: "r1", Status: entity.ReportPending}, nil).Once()
		reports.On("Review", ctx, mock.MatchedBy(func(r *entity.Report) bool {
			return r.Status == entity.ReportResolved && r.ReviewedBy == "admin1" && r.AdminNotes == "removed"
		})).Return(nil).Once()

		report, err := uc.Review(ctx, admin, ReviewReportInput{ReportID: "r1", Status: entity.ReportResolved, AdminNotes: "removed"})
		require.NoError(t, err)
		require.NotNil(t, report.ReviewedAt)
		assert.Equal(t, fixedNow, *report.ReviewedAt)
	})

	t.Run("TerminalStatus", func(t *testing.T) {
		reports := new(mocks.ReportRepository)
		uc := NewReportUseCase(reports, nil, testLogger())
		reports.On("GetByID", ctx, "r1").Return(&entity.Report{ID: "r1", Status: entity.ReportDismissed}, nil).Once()

		_, err := uc.Review(ctx, admin, ReviewReportInput{ReportID: "r1", Status: entity.ReportReviewed})
		assert.ErrorIs(t, err, entity.ErrInvalidState)
		reports.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
	})

	t.Run("AdminOnly", func(t *testing.T) {
		uc := NewReportUseCase(new(mocks.ReportRepository), nil, testLogger())
		_, err := uc.Review(ctx, session("u1", entity.RoleUser), ReviewReportInput{ReportID: "r1", Status: entity.ReportResolved})
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("Missing", func(t *testing.T) {
		reports := new(mocks.ReportRepository)
		uc := NewReportUseCase(reports, nil, testLogger())
		reports.On("GetByID", ctx, "r404").Return(nil, repository.ErrNotFound).Once()
		_, err := uc.Review(ctx, admin, ReviewReportInput{ReportID: "r404", Status: entity.ReportResolved})
		assert.EqualError(t, err, "Report not found")
	})
}

func TestReportUseCase_List(t *testing.T) {
	ctx := context.Background()
	reports := new(mocks.ReportRepository)
	uc := NewReportUseCase(reports, nil, testLogger())

	_, _, err := uc.List(ctx, repository.ReportFilter{Status: "weird"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	filter := repository.ReportFilter{Status: entity.ReportPending, Page: entity.NewPageRequest(1, 10)}
	reports.On("List", ctx, filter).Return([]*entity.Report{{ID: "r1"}}, int64(1), nil).Once()
	list, p, err := uc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, p.Pages)
}
