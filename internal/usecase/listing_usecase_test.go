package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository/mocks"
)

func listingInput() ListingInput {
	return ListingInput{
		Pet:         entity.PetDetails{Name: "Milo", Type: "cat"},
		Description: "Calm indoor cat",
		City:        "Chittagong",
		State:       "Chittagong",
	}
}

func TestAdoptionUseCase_Create(t *testing.T) {
	ctx := context.Background()
	listings := new(mocks.AdoptionRepository)
	uc := NewAdoptionUseCase(listings, testLogger())
	uc.now = clock
	s := session("u1", entity.RoleUser)

	in := CreateAdoptionInput{ListingInput: listingInput()}
	in.Pet.Name = ""
	_, err := uc.Create(ctx, s, in)
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "basic", verr.Step)

	in = CreateAdoptionInput{ListingInput: listingInput(), AdoptionFee: -1}
	_, err = uc.Create(ctx, s, in)
	assert.ErrorIs(t, err, entity.ErrValidation)

	listings.On("Create", ctx, mock.MatchedBy(func(l *entity.AdoptionListing) bool {
		return l.Status == entity.AdoptionAvailable && l.PostedBy == "u1"
	})).Return("ad1", nil).Once()
	listing, err := uc.Create(ctx, s, CreateAdoptionInput{ListingInput: listingInput(), AdoptionFee: 25})
	require.NoError(t, err)
	assert.Equal(t, "ad1", listing.ID)
}

func TestAdoptionUseCase_Apply(t *testing.T) {
	ctx := context.Background()
	available := func() *entity.AdoptionListing {
		return &entity.AdoptionListing{
			ID: "ad1", PostedBy: "owner", Status: entity.AdoptionAvailable,
			Applications: []entity.Application{{ApplicantID: "u9"}},
		}
	}

	t.Run("Rules", func(t *testing.T) {
		listings := new(mocks.AdoptionRepository)
		uc := NewAdoptionUseCase(listings, testLogger())
		listings.On("GetByID", ctx, "ad1").Return(available(), nil)

		_, err := uc.Apply(ctx, session("owner", entity.RoleUser), "ad1", "")
		assert.EqualError(t, err, "You cannot apply to your own listing")

		_, err = uc.Apply(ctx, session("u9", entity.RoleUser), "ad1", "")
		assert.ErrorIs(t, err, entity.ErrConflict)
		assert.EqualError(t, err, "You have already applied for this pet")
	})

	t.Run("NotAvailable", func(t *testing.T) {
		listings := new(mocks.AdoptionRepository)
		uc := NewAdoptionUseCase(listings, testLogger())
		l := available()
		l.Status = entity.AdoptionAdopted
		listings.On("GetByID", ctx, "ad1").Return(l, nil).Once()

		_, err := uc.Apply(ctx, session("u2", entity.RoleUser), "ad1", "")
		assert.ErrorIs(t, err, entity.ErrInvalidState)
	})

	t.Run("ConcurrentDuplicate", func(t *testing.T) {
		listings := new(mocks.AdoptionRepository)
		uc := NewAdoptionUseCase(listings, testLogger())
		listings.On("GetByID", ctx, "ad1").Return(available(), nil).Once()
		listings.On("AddApplication", ctx, "ad1", mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := uc.Apply(ctx, session("u2", entity.RoleUser), "ad1", "hi")
		assert.ErrorIs(t, err, entity.ErrConflict)
	})

	t.Run("Success", func(t *testing.T) {
		listings := new(mocks.AdoptionRepository)
		uc := NewAdoptionUseCase(listings, testLogger())
		uc.now = clock
		listings.On("GetByID", ctx, "ad1").Return(available(), nil).Once()
		listings.On("AddApplication", ctx, "ad1", entity.Application{
			ApplicantID: "u2", Message: "I have a garden", Status: entity.ApplicationPending, AppliedAt: fixedNow,
		}).Return(nil).Once()

		listing, err := uc.Apply(ctx, session("u2", entity.RoleUser), "ad1", " I have a garden ")
		require.NoError(t, err)
		assert.True(t, listing.HasApplied("u2"))
	})
}

func TestAdoptionUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	listings := new(mocks.AdoptionRepository)
	uc := NewAdoptionUseCase(listings, testLogger())
	listings.On("GetByID", ctx, "ad1").Return(&entity.AdoptionListing{
		ID: "ad1", PostedBy: "owner", Status: entity.AdoptionAvailable,
		Applications: []entity.Application{{ApplicantID: "u9"}},
	}, nil)
	owner := session("owner", entity.RoleUser)

	_, err := uc.UpdateStatus(ctx, session("u2", entity.RoleUser), "ad1", entity.AdoptionAdopted, "u9")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = uc.UpdateStatus(ctx, owner, "ad1", entity.AdoptionAdopted, "stranger")
	assert.ErrorIs(t, err, entity.ErrValidation)

	listings.On("UpdateStatus", ctx, "ad1", entity.AdoptionAdopted, "u9").Return(nil).Once()
	listing, err := uc.UpdateStatus(ctx, owner, "ad1", entity.AdoptionAdopted, "u9")
	require.NoError(t, err)
	assert.Equal(t, "u9", listing.AdoptedBy)
}

func TestFosterUseCase_Create_DateOrder(t *testing.T) {
	ctx := context.Background()
	listings := new(mocks.FosterRepository)
	uc := NewFosterUseCase(listings, testLogger())
	s := session("u1", entity.RoleUser)
	start := fixedNow.Add(24 * time.Hour)

	in := CreateFosterInput{ListingInput: listingInput(), Duration: entity.FosterShortTerm}
	_, err := uc.Create(ctx, s, in)
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "startDate")

	in.StartDate = &start
	in.EndDate = ptr(start.Add(-time.Hour))
	_, err = uc.Create(ctx, s, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "endDate")

	in.Duration = "forever"
	in.EndDate = nil
	_, err = uc.Create(ctx, s, in)
	assert.ErrorIs(t, err, entity.ErrValidation)

	in.Duration = entity.FosterLongTerm
	in.EndDate = ptr(start.Add(30 * 24 * time.Hour))
	listings.On("Create", ctx, mock.AnythingOfType("*entity.FosterListing")).Return("f1", nil).Once()
	listing, err := uc.Create(ctx, s, in)
	require.NoError(t, err)
	assert.Equal(t, entity.FosterAvailable, listing.Status)
	assert.Equal(t, start, listing.StartDate)
}

func TestFosterUseCase_AssignAndComplete(t *testing.T) {
	ctx := context.Background()
	listings := new(mocks.FosterRepository)
	uc := NewFosterUseCase(listings, testLogger())
	uc.now = clock
	owner := session("owner", entity.RoleUser)
	stored := func(status entity.FosterStatus) *entity.FosterListing {
		return &entity.FosterListing{
			ID: "f1", PostedBy: "owner", Status: status,
			Applications: []entity.Application{{ApplicantID: "u9", Status: entity.ApplicationPending}},
		}
	}

	listings.On("GetByID", ctx, "f1").Return(stored(entity.FosterAvailable), nil).Once()
	_, err := uc.Assign(ctx, owner, "f1", "u2", "")
	assert.ErrorIs(t, err, entity.ErrValidation)

	listings.On("GetByID", ctx, "f1").Return(stored(entity.FosterAvailable), nil).Once()
	listings.On("AssignParent", ctx, "f1", entity.FosterParent{UserID: "u9", AssignedAt: fixedNow, Notes: "weekdays"}).Return(nil).Once()
	listing, err := uc.Assign(ctx, owner, "f1", "u9", "weekdays")
	require.NoError(t, err)
	assert.Equal(t, entity.FosterFostered, listing.Status)
	require.NotNil(t, listing.FosterParent)
	assert.Equal(t, entity.ApplicationApproved, listing.Applications[0].Status)

	listings.On("GetByID", ctx, "f1").Return(stored(entity.FosterAvailable), nil).Once()
	_, err = uc.Complete(ctx, owner, "f1")
	assert.ErrorIs(t, err, entity.ErrInvalidState)

	listings.On("GetByID", ctx, "f1").Return(stored(entity.FosterFostered), nil).Once()
	listings.On("UpdateStatus", ctx, "f1", entity.FosterCompleted).Return(nil).Once()
	listing, err = uc.Complete(ctx, owner, "f1")
	require.NoError(t, err)
	assert.Equal(t, entity.FosterCompleted, listing.Status)
	listings.AssertExpectations(t)
}
