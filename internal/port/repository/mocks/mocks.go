// Package mocks holds testify mocks of the repository and cache ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) user(args mock.Arguments) (*entity.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.user(m.Called(ctx, email))
}
func (m *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return m.user(m.Called(ctx, token))
}
func (m *UserRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return m.user(m.Called(ctx, token))
}
func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *UserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}
func (m *UserRepository) SetBlocked(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserRepository) ClearBlockedBy(ctx context.Context, blockerID string) (int64, error) {
	args := m.Called(ctx, blockerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *UserRepository) Stats(ctx context.Context, since time.Time) (*entity.UserStats, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserStats), args.Error(1)
}

type PetPostRepository struct{ mock.Mock }

func (m *PetPostRepository) post(args mock.Arguments) (*entity.PetPost, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PetPost), args.Error(1)
}

func (m *PetPostRepository) Create(ctx context.Context, post *entity.PetPost) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}
func (m *PetPostRepository) GetByID(ctx context.Context, id string) (*entity.PetPost, error) {
	return m.post(m.Called(ctx, id))
}
func (m *PetPostRepository) IncrementViews(ctx context.Context, id string) (*entity.PetPost, error) {
	return m.post(m.Called(ctx, id))
}
func (m *PetPostRepository) List(ctx context.Context, filter repository.PetPostFilter) ([]*entity.PetPost, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.PetPost), args.Get(1).(int64), args.Error(2)
}
func (m *PetPostRepository) AddComment(ctx context.Context, id string, comment entity.PostComment) (*entity.PetPost, error) {
	return m.post(m.Called(ctx, id, comment))
}
func (m *PetPostRepository) Resolve(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error) {
	return m.post(m.Called(ctx, id, by, at))
}
func (m *PetPostRepository) Close(ctx context.Context, id, by string, at time.Time) (*entity.PetPost, error) {
	return m.post(m.Called(ctx, id, by, at))
}
func (m *PetPostRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *PetPostRepository) CountByStatus(ctx context.Context) (map[entity.PostStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.PostStatus]int64), args.Error(1)
}

type TestimonialRepository struct{ mock.Mock }

func (m *TestimonialRepository) testimonial(args mock.Arguments) (*entity.Testimonial, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Testimonial), args.Error(1)
}

func (m *TestimonialRepository) Create(ctx context.Context, t *entity.Testimonial) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}
func (m *TestimonialRepository) GetByID(ctx context.Context, id string) (*entity.Testimonial, error) {
	return m.testimonial(m.Called(ctx, id))
}
func (m *TestimonialRepository) GetByUserID(ctx context.Context, userID string) (*entity.Testimonial, error) {
	return m.testimonial(m.Called(ctx, userID))
}
func (m *TestimonialRepository) Update(ctx context.Context, t *entity.Testimonial) error {
	return m.Called(ctx, t).Error(0)
}
func (m *TestimonialRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	return m.Called(ctx, id, approved).Error(0)
}
func (m *TestimonialRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *TestimonialRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *TestimonialRepository) ListApproved(ctx context.Context, limit int) ([]*entity.Testimonial, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Testimonial), args.Error(1)
}
func (m *TestimonialRepository) List(ctx context.Context, filter repository.TestimonialFilter) ([]*entity.Testimonial, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Testimonial), args.Get(1).(int64), args.Error(2)
}
func (m *TestimonialRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AlertRepository struct{ mock.Mock }

func (m *AlertRepository) Create(ctx context.Context, alert *entity.Alert) (string, error) {
	args := m.Called(ctx, alert)
	return args.String(0), args.Error(1)
}
func (m *AlertRepository) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Alert), args.Error(1)
}
func (m *AlertRepository) Update(ctx context.Context, alert *entity.Alert) error {
	return m.Called(ctx, alert).Error(0)
}
func (m *AlertRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *AlertRepository) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Alert), args.Get(1).(int64), args.Error(2)
}

type AdoptionRepository struct{ mock.Mock }

func (m *AdoptionRepository) Create(ctx context.Context, listing *entity.AdoptionListing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}
func (m *AdoptionRepository) GetByID(ctx context.Context, id string) (*entity.AdoptionListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AdoptionListing), args.Error(1)
}
func (m *AdoptionRepository) List(ctx context.Context, filter repository.AdoptionFilter) ([]*entity.AdoptionListing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AdoptionListing), args.Get(1).(int64), args.Error(2)
}
func (m *AdoptionRepository) AddApplication(ctx context.Context, id string, app entity.Application) error {
	return m.Called(ctx, id, app).Error(0)
}
func (m *AdoptionRepository) UpdateStatus(ctx context.Context, id string, status entity.AdoptionStatus, adoptedBy string) error {
	return m.Called(ctx, id, status, adoptedBy).Error(0)
}
func (m *AdoptionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type FosterRepository struct{ mock.Mock }

func (m *FosterRepository) Create(ctx context.Context, listing *entity.FosterListing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}
func (m *FosterRepository) GetByID(ctx context.Context, id string) (*entity.FosterListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FosterListing), args.Error(1)
}
func (m *FosterRepository) List(ctx context.Context, filter repository.FosterFilter) ([]*entity.FosterListing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.FosterListing), args.Get(1).(int64), args.Error(2)
}
func (m *FosterRepository) AddApplication(ctx context.Context, id string, app entity.Application) error {
	return m.Called(ctx, id, app).Error(0)
}
func (m *FosterRepository) AssignParent(ctx context.Context, id string, parent entity.FosterParent) error {
	return m.Called(ctx, id, parent).Error(0)
}
func (m *FosterRepository) UpdateStatus(ctx context.Context, id string, status entity.FosterStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *FosterRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type VetDirectoryRepository struct{ mock.Mock }

func (m *VetDirectoryRepository) entry(args mock.Arguments) (*entity.VetDirectoryEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VetDirectoryEntry), args.Error(1)
}

func (m *VetDirectoryRepository) Create(ctx context.Context, e *entity.VetDirectoryEntry) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}
func (m *VetDirectoryRepository) GetByID(ctx context.Context, id string) (*entity.VetDirectoryEntry, error) {
	return m.entry(m.Called(ctx, id))
}
func (m *VetDirectoryRepository) GetByVetID(ctx context.Context, vetID string) (*entity.VetDirectoryEntry, error) {
	return m.entry(m.Called(ctx, vetID))
}
func (m *VetDirectoryRepository) Update(ctx context.Context, e *entity.VetDirectoryEntry) error {
	return m.Called(ctx, e).Error(0)
}
func (m *VetDirectoryRepository) AddRating(ctx context.Context, id string, score int) (*entity.VetDirectoryEntry, error) {
	return m.entry(m.Called(ctx, id, score))
}
func (m *VetDirectoryRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}
func (m *VetDirectoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *VetDirectoryRepository) List(ctx context.Context, filter repository.VetFilter) ([]*entity.VetDirectoryEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.VetDirectoryEntry), args.Get(1).(int64), args.Error(2)
}

type ReportRepository struct{ mock.Mock }

func (m *ReportRepository) Create(ctx context.Context, report *entity.Report) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}
func (m *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}
func (m *ReportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Report), args.Get(1).(int64), args.Error(2)
}
func (m *ReportRepository) Review(ctx context.Context, report *entity.Report) error {
	return m.Called(ctx, report).Error(0)
}
func (m *ReportRepository) CountByStatus(ctx context.Context, status entity.ReportStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type CacheRepository struct{ mock.Mock }

func (m *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}
func (m *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}
