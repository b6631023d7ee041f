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
	"github.com/ahsanauddry027/safetails-sub000/internal/port/cache"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

var errDirectoryEntryExists = entity.NewError(entity.ErrConflict, "You already have a directory entry")

type VetDirectoryUseCase struct {
	entries  repository.VetDirectoryRepository
	cache    cache.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewVetDirectoryUseCase(entries repository.VetDirectoryRepository, c cache.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *VetDirectoryUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &VetDirectoryUseCase{
		entries:  entries,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger.Named("VetDirectoryUseCase"),
		now:      time.Now,
	}
}

type VetEntryInput struct {
	ClinicName           string
	Description          string
	Specializations      []string
	Services             []string
	Address              string
	City                 string
	State                string
	ZipCode              string
	Latitude             *float64
	Longitude            *float64
	Contact              entity.VetContact
	OperatingHours       map[string]entity.DayHours
	IsEmergencyAvailable bool
	Is24Hours            bool
}

func (in VetEntryInput) validate() error {
	verr := &entity.ValidationError{Fields: map[string]string{}}
	if strings.TrimSpace(in.ClinicName) == "" {
		verr.Fields["clinicName"] = "Clinic name is required"
	}
	if strings.TrimSpace(in.City) == "" {
		verr.Fields["city"] = "City is required"
	}
	if strings.TrimSpace(in.State) == "" {
		verr.Fields["state"] = "State is required"
	}
	if strings.TrimSpace(in.Contact.Phone) == "" {
		verr.Fields["contact.phone"] = "Contact phone is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (in VetEntryInput) apply(e *entity.VetDirectoryEntry) {
	e.ClinicName = strings.TrimSpace(in.ClinicName)
	e.Description = in.Description
	e.Specializations = in.Specializations
	e.Services = in.Services
	e.Location = pointOrOrigin(in.Latitude, in.Longitude, in.Address)
	e.City = in.City
	e.State = in.State
	e.ZipCode = in.ZipCode
	e.Contact = in.Contact
	e.OperatingHours = in.OperatingHours
	e.IsEmergencyAvailable = in.IsEmergencyAvailable
	e.Is24Hours = in.Is24Hours
}

// Create registers the calling vet's clinic. Each vet owns at most one entry.
func (uc *VetDirectoryUseCase) Create(ctx context.Context, s *auth.Session, in VetEntryInput) (*entity.VetDirectoryEntry, error) {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleVet)); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := uc.entries.GetByVetID(ctx, s.UserID); err == nil {
		return nil, errDirectoryEntryExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("VetDirectoryUseCase.Create: %w", err)
	}

	now := uc.now().UTC()
	entry := &entity.VetDirectoryEntry{
		VetID:     s.UserID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(entry)
	if err := entry.Location.Validate(); err != nil {
		return nil, entity.NewValidationError("location", err.Error())
	}
	id, err := uc.entries.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errDirectoryEntryExists
		}
		return nil, fmt.Errorf("VetDirectoryUseCase.Create: %w", err)
	}
	entry.ID = id
	return entry, nil
}

func (uc *VetDirectoryUseCase) List(ctx context.Context, f repository.VetFilter) ([]*entity.VetDirectoryEntry, entity.Pagination, error) {
	entries, total, err := uc.entries.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("VetDirectoryUseCase.List: %w", err)
	}
	return entries, entity.NewPagination(f.Page, total), nil
}

func (uc *VetDirectoryUseCase) Get(ctx context.Context, id string) (*entity.VetDirectoryEntry, error) {
	key := vetCacheKey(id)
	var cached entity.VetDirectoryEntry
	if cacheGet(ctx, uc.cache, uc.logger, key, &cached) {
		return &cached, nil
	}
	entry, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Directory entry")
	}
	cacheSet(ctx, uc.cache, uc.logger, key, entry, uc.cacheTTL)
	return entry, nil
}

func (uc *VetDirectoryUseCase) load(ctx context.Context, id string) (*entity.VetDirectoryEntry, error) {
	entry, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Directory entry")
	}
	return entry, nil
}

func (uc *VetDirectoryUseCase) Update(ctx context.Context, s *auth.Session, id string, in VetEntryInput) (*entity.VetDirectoryEntry, error) {
	entry, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(s, auth.IsOwner(entry.VetID), auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	in.apply(entry)
	if err := entry.Location.Validate(); err != nil {
		return nil, entity.NewValidationError("location", err.Error())
	}
	entry.UpdatedAt = uc.now().UTC()
	if err := uc.entries.Update(ctx, entry); err != nil {
		return nil, repoErr(err, "Directory entry")
	}
	cacheDelete(ctx, uc.cache, uc.logger, vetCacheKey(id))
	return entry, nil
}

func (uc *VetDirectoryUseCase) Delete(ctx context.Context, s *auth.Session, id string) error {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.entries.Delete(ctx, id); err != nil {
		return repoErr(err, "Directory entry")
	}
	cacheDelete(ctx, uc.cache, uc.logger, vetCacheKey(id))
	return nil
}

func (uc *VetDirectoryUseCase) Rate(ctx context.Context, s *auth.Session, id string, score int) (*entity.VetDirectoryEntry, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	if !entity.ValidRating(score) {
		return nil, entity.NewValidationError("score", "Score must be between 1 and 5")
	}
	entry, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.VetID == s.UserID {
		return nil, entity.NewError(entity.ErrForbidden, "You cannot rate your own clinic")
	}
	updated, err := uc.entries.AddRating(ctx, id, score)
	if err != nil {
		return nil, repoErr(err, "Directory entry")
	}
	cacheDelete(ctx, uc.cache, uc.logger, vetCacheKey(id))
	return updated, nil
}

func (uc *VetDirectoryUseCase) Verify(ctx context.Context, s *auth.Session, id string, verified bool) error {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.entries.SetVerified(ctx, id, verified); err != nil {
		return repoErr(err, "Directory entry")
	}
	cacheDelete(ctx, uc.cache, uc.logger, vetCacheKey(id))
	return nil
}
