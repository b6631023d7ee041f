package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/wizard"
)

var (
	errOwnListing     = entity.NewError(entity.ErrValidation, "You cannot apply to your own listing")
	errAlreadyApplied = entity.NewError(entity.ErrConflict, "You have already applied for this pet")
)

type AdoptionUseCase struct {
	listings repository.AdoptionRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewAdoptionUseCase(listings repository.AdoptionRepository, logger *zap.Logger) *AdoptionUseCase {
	return &AdoptionUseCase{listings: listings, logger: logger.Named("AdoptionUseCase"), now: time.Now}
}

// ListingInput carries the fields shared by adoption and foster listings.
type ListingInput struct {
	Pet           entity.PetDetails
	Description   string
	Images        []string
	Address       string
	City          string
	State         string
	Latitude      *float64
	Longitude     *float64
	Requirements  []string
	Compatibility entity.Compatibility
	ContactInfo   entity.ContactInfo
}

func (in ListingInput) formValues() map[string]string {
	return map[string]string{
		"petName":        in.Pet.Name,
		"petType":        in.Pet.Type,
		"petBreed":       in.Pet.Breed,
		"petAge":         in.Pet.Age,
		"petGender":      in.Pet.Gender,
		"petSize":        in.Pet.Size,
		"petColor":       in.Pet.Color,
		"description":    in.Description,
		"isVaccinated":   strconv.FormatBool(in.Compatibility.IsVaccinated),
		"isNeutered":     strconv.FormatBool(in.Compatibility.IsNeutered),
		"isHouseTrained": strconv.FormatBool(in.Compatibility.IsHouseTrained),
		"goodWithKids":   strconv.FormatBool(in.Compatibility.GoodWithKids),
		"goodWithPets":   strconv.FormatBool(in.Compatibility.GoodWithPets),
		"requirements":   strings.Join(in.Requirements, ","),
		"contactPhone":   in.ContactInfo.Phone,
		"contactEmail":   in.ContactInfo.Email,
		"address":        in.Address,
		"city":           in.City,
		"state":          in.State,
	}
}

type CreateAdoptionInput struct {
	ListingInput
	AdoptionFee float64
	HealthNotes string
}

func validateForm(kind string, values map[string]string) error {
	def, err := wizard.Lookup(kind)
	if err != nil {
		return fmt.Errorf("form %s: %w", kind, err)
	}
	return def.Validate(values)
}

func (uc *AdoptionUseCase) Create(ctx context.Context, s *auth.Session, in CreateAdoptionInput) (*entity.AdoptionListing, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	values := in.formValues()
	values["healthNotes"] = in.HealthNotes
	values["adoptionFee"] = strconv.FormatFloat(in.AdoptionFee, 'f', -1, 64)
	if err := validateForm(wizard.KindAdoption, values); err != nil {
		return nil, err
	}
	if in.AdoptionFee < 0 {
		return nil, entity.NewValidationError("adoptionFee", "Adoption fee cannot be negative")
	}

	now := uc.now().UTC()
	listing := &entity.AdoptionListing{
		Pet:           in.Pet,
		Description:   strings.TrimSpace(in.Description),
		Images:        in.Images,
		Location:      pointOrOrigin(in.Latitude, in.Longitude, in.Address),
		City:          in.City,
		State:         in.State,
		AdoptionFee:   in.AdoptionFee,
		Requirements:  in.Requirements,
		Compatibility: in.Compatibility,
		HealthNotes:   in.HealthNotes,
		ContactInfo:   in.ContactInfo,
		Status:        entity.AdoptionAvailable,
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
		return nil, fmt.Errorf("AdoptionUseCase.Create: %w", err)
	}
	listing.ID = id
	return listing, nil
}

func (uc *AdoptionUseCase) List(ctx context.Context, f repository.AdoptionFilter) ([]*entity.AdoptionListing, entity.Pagination, error) {
	listings, total, err := uc.listings.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("AdoptionUseCase.List: %w", err)
	}
	return listings, entity.NewPagination(f.Page, total), nil
}

func (uc *AdoptionUseCase) Get(ctx context.Context, id string) (*entity.AdoptionListing, error) {
	listing, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Adoption listing")
	}
	return listing, nil
}

func (uc *AdoptionUseCase) Apply(ctx context.Context, s *auth.Session, id, message string) (*entity.AdoptionListing, error) {
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
	if listing.Status != entity.AdoptionAvailable {
		return nil, entity.NewError(entity.ErrInvalidState, "This pet is no longer available for adoption")
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
			return nil, entity.NewError(entity.ErrInvalidState, "This pet is no longer available for adoption")
		}
		return nil, repoErr(err, "Adoption listing")
	}
	listing.Applications = append(listing.Applications, app)
	uc.logger.Info("Adoption application submitted", zap.String("listingID", id), zap.String("applicantID", s.UserID))
	return listing, nil
}

// UpdateStatus is for the owner or an admin. adoptedBy, when given, must be
// one of the applicants.
func (uc *AdoptionUseCase) UpdateStatus(ctx context.Context, s *auth.Session, id string, status entity.AdoptionStatus, adoptedBy string) (*entity.AdoptionListing, error) {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(s, auth.IsOwner(listing.PostedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, entity.NewValidationError("status", "Status must be available, pending or adopted")
	}
	if status != entity.AdoptionAdopted {
		adoptedBy = ""
	}
	if adoptedBy != "" && !listing.HasApplied(adoptedBy) {
		return nil, entity.NewValidationError("adoptedBy", "Adopter must have applied for this pet")
	}
	if err := uc.listings.UpdateStatus(ctx, id, status, adoptedBy); err != nil {
		return nil, repoErr(err, "Adoption listing")
	}
	listing.Status = status
	listing.AdoptedBy = adoptedBy
	listing.UpdatedAt = uc.now().UTC()
	return listing, nil
}

func (uc *AdoptionUseCase) Delete(ctx context.Context, s *auth.Session, id string) error {
	listing, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(s, auth.IsOwner(listing.PostedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.listings.Delete(ctx, id); err != nil {
		return repoErr(err, "Adoption listing")
	}
	return nil
}
