package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/wizard"
)

var errFosterUnavailable = entity.NewError(entity.ErrInvalidState, "This pet is no longer available for fostering")

type FosterUseCase struct {
	listings repository.FosterRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewFosterUseCase(listings repository.FosterRepository, logger *zap.Logger) *FosterUseCase {
	return &FosterUseCase{listings: listings, logger: logger.Named("FosterUseCase"), now: time.Now}
}

type CreateFosterInput struct {
	ListingInput
	Duration     entity.FosterDuration
	StartDate    *time.Time
	EndDate      *time.Time
	SpecialNeeds string
}

func (uc *FosterUseCase) Create(ctx context.Context, s *auth.Session, in CreateFosterInput) (*entity.FosterListing, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	values := in.formValues()
	values["duration"] = string(in.Duration)
	values["startDate"] = optionalTime(in.StartDate)
	values["endDate"] = optionalTime(in.EndDate)
	values["specialNeeds"] = in.SpecialNeeds
	if err := validateForm(wizard.KindFoster, values); err != nil {
		return nil, err
	}
	if !in.Duration.IsValid() {
		return nil, entity.NewValidationError("duration", "Duration must be short-term, long-term or emergency")
	}
	if in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, entity.NewValidationError("endDate", "End date cannot be before start date")
	}

	now := uc.now().UTC()
	listing := &entity.FosterListing{
		Pet:           in.Pet,
		Description:   strings.TrimSpace(in.Description),
		Images:        in.Images,
		Location:      pointOrOrigin(in.Latitude, in.Longitude, in.Address),
		City:          in.City,
		State:         in.State,
		Duration:      in.Duration,
		StartDate:     *in.StartDate,
		EndDate:       in.EndDate,
		Requirements:  in.Requirements,
		SpecialNeeds:  in.SpecialNeeds,
		Compatibility: in.Compatibility,
		ContactInfo:   in.ContactInfo,
		Status:        entity.FosterAvailable,
		PostedBy:      s.UserID,
		Applications:  []entity.Application{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := listing.Location.Validate(); err != nil {
		return nil, entity.NewValidationError("location", err.Error())
	}
	id, err := uc.listings.Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("FosterUseCase.Create: %w", err)
	}
	listing.ID = id
	return listing, nil
}

func (uc *FosterUseCase) List(ctx context.Context, f repository.FosterFilter) ([]*entity.FosterListing, entity.Pagination, error) {
	listings, total, err := uc.listings.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("FosterUseCase.List: %w", err)
	}
	return listings, entity.NewPagination(f.Page, total), nil
}

func (uc *FosterUseCase) Get(ctx context.Context, id string) (*entity.FosterListing, error) {
	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Foster listing")
	}
	return listing, nil
}

func (uc *FosterUseCase) Apply(ctx context.Context, s *auth.Session, id, message string) (*entity.FosterListing, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.PostedBy == s.UserID {
		return nil, errOwnListing
	}
	if listing.Status != entity.FosterAvailable {
		return nil, errFosterUnavailable
	}
	if listing.HasApplied(s.UserID) {
		return nil, errAlreadyApplied
	}
	app := entity.Application{
		ApplicantID: s.UserID,
		Message:     strings.TrimSpace(message),
		Status:      entity.ApplicationPending,
		AppliedAt:   uc.now().UTC(),
	}
	if err := uc.listings.AddApplication(ctx, id, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, errAlreadyApplied
		case errors.Is(err, repository.ErrConditionFailed):
			return nil, errFosterUnavailable
		}
		return nil, repoErr(err, "Foster listing")
	}
	listing.Applications = append(listing.Applications, app)
	return listing, nil
}

// Assign makes an applicant the foster parent and moves the listing to
// fostered.
func (uc *FosterUseCase) Assign(ctx context.Context, s *auth.Session, id, userID, notes string) (*entity.FosterListing, error) {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(s, auth.IsOwner(listing.PostedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if listing.Status != entity.FosterAvailable {
		return nil, errFosterUnavailable
	}
	if !listing.HasApplied(userID) {
		return nil, entity.NewValidationError("userId", "User has not applied to foster this pet")
	}
	parent := entity.FosterParent{UserID: userID, AssignedAt: uc.now().UTC(), Notes: strings.TrimSpace(notes)}
	if err := uc.listings.AssignParent(ctx, id, parent); err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, errFosterUnavailable
		}
		return nil, repoErr(err, "Foster listing")
	}
	listing.Status = entity.FosterFostered
	listing.FosterParent = &parent
	for i := range listing.Applications {
		if listing.Applications[i].ApplicantID == userID {
			listing.Applications[i].Status = entity.ApplicationApproved
		}
	}
	uc.logger.Info("Foster parent assigned", zap.String("listingID", id), zap.String("userID", userID))
	return listing, nil
}

func (uc *FosterUseCase) Complete(ctx context.Context, s *auth.Session, id string) (*entity.FosterListing, error) {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(s, auth.IsOwner(listing.PostedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if listing.Status != entity.FosterFostered {
		return nil, entity.NewError(entity.ErrInvalidState, "Only fostered listings can be completed")
	}
	if err := uc.listings.UpdateStatus(ctx, id, entity.FosterCompleted); err != nil {
		return nil, repoErr(err, "Foster listing")
	}
	listing.Status = entity.FosterCompleted
	return listing, nil
}

func (uc *FosterUseCase) Delete(ctx context.Context, s *auth.Session, id string) error {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(s, auth.IsOwner(listing.PostedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.listings.Delete(ctx, id); err != nil {
		return repoErr(err, "Foster listing")
	}
	return nil
}
