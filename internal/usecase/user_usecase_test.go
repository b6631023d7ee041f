package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository/mocks"
)

type userFixture struct {
	users        *mocks.UserRepository
	posts        *mocks.PetPostRepository
	testimonials *mocks.TestimonialRepository
	reports      *mocks.ReportRepository
	publisher    *MockPublisher
	cache        *mocks.CacheRepository
	uc           *UserUseCase
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:        new(mocks.UserRepository),
		posts:        new(mocks.PetPostRepository),
		testimonials: new(mocks.TestimonialRepository),
		reports:      new(mocks.ReportRepository),
		publisher:    new(MockPublisher),
		cache:        new(mocks.CacheRepository),
	}
	f.uc = NewUserUseCase(f.users, f.posts, f.testimonials, f.reports, f.publisher, f.cache, testLogger())
	f.uc.now = clock
	return f
}

func TestUserUseCase_List_Pagination(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	page := make([]*entity.User, 10)
	for i := range page {
		page[i] = &entity.User{ID: fmt.Sprintf("u%d", i+11)}
	}
	filter := repository.UserFilter{Page: entity.NewPageRequest(2, 10)}
	f.users.On("List", ctx, filter).Return(page, int64(25), nil).Once()

	users, p, err := f.uc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, entity.Pagination{Total: 25, Page: 2, Limit: 10, Pages: 3}, p)
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "vet@example.com" && u.Role == entity.RoleVet && u.IsActive
		})).Return("u9", nil).Once()

		user, err := f.uc.Create(ctx, CreateUserInput{Name: "Vet", Email: "VET@example.com", Password: testPassword, Role: entity.RoleVet})
		require.NoError(t, err)
		assert.Equal(t, "u9", user.ID)
		assert.True(t, auth.CheckPassword(user.Password, testPassword))
	})

	t.Run("Duplicate", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicate).Once()

		_, err := f.uc.Create(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: testPassword})
		assert.ErrorIs(t, err, entity.ErrConflict)
		assert.EqualError(t, err, "User with this email already exists")
	})

	t.Run("WeakPassword", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Create(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "alllowercase1"})
		assert.ErrorIs(t, err, entity.ErrValidation)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Update_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Email: "old@example.com", Role: entity.RoleUser}, nil).Once()
	f.users.On("Update", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

	_, err := f.uc.Update(ctx, session("admin1", entity.RoleAdmin), "u1", UpdateUserInput{Email: ptr("taken@example.com")})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestUserUseCase_Update_Self(t *testing.T) {
	ctx := context.Background()
	admin := session("admin1", entity.RoleAdmin)
	self := func() *entity.User {
		return &entity.User{ID: "admin1", Email: "admin@example.com", Role: entity.RoleAdmin, IsActive: true}
	}

	t.Run("RoleChangeRejected", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "admin1").Return(self(), nil).Once()

		role := entity.RoleUser
		_, err := f.uc.Update(ctx, admin, "admin1", UpdateUserInput{Role: &role})
		assert.ErrorIs(t, err, entity.ErrValidation)
		assert.EqualError(t, err, "You cannot change your own role")
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("DeactivationRejected", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "admin1").Return(self(), nil).Once()

		_, err := f.uc.Update(ctx, admin, "admin1", UpdateUserInput{IsActive: ptr(false)})
		assert.ErrorIs(t, err, entity.ErrValidation)
		assert.EqualError(t, err, "You cannot deactivate your own account")
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("OtherFieldsAllowed", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "admin1").Return(self(), nil).Once()
		f.users.On("Update", ctx, mock.Anything).Return(nil).Once()

		role := entity.RoleAdmin
		u, err := f.uc.Update(ctx, admin, "admin1", UpdateUserInput{Name: ptr("Root"), Role: &role, IsActive: ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, "Root", u.Name)
		assert.Equal(t, entity.RoleAdmin, u.Role)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	admin := session("admin1", entity.RoleAdmin)

	t.Run("Self", func(t *testing.T) {
		f := newUserFixture()
		err := f.uc.Delete(ctx, admin, "admin1")
		assert.ErrorIs(t, err, entity.ErrValidation)
		assert.EqualError(t, err, "You cannot delete your own account")
	})

	t.Run("NullifiesReferences", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "u2").Return(&entity.User{ID: "u2"}, nil).Once()
		f.users.On("Delete", ctx, "u2").Return(nil).Once()
		f.users.On("ClearBlockedBy", ctx, "u2").Return(int64(3), nil).Once()
		f.testimonials.On("DeleteByUserID", ctx, "u2").Return(nil).Once()
		f.cache.On("Delete", ctx, []string{approvedTestimonialsKey}).Return(nil).Once()
		f.publisher.On("Publish", ctx, SubjectUserDeleted, mock.MatchedBy(func(e UserEvent) bool {
			return e.UserID == "u2" && e.ActorID == "admin1"
		})).Return(nil).Once()

		require.NoError(t, f.uc.Delete(ctx, admin, "u2"))
		f.users.AssertExpectations(t)
		f.testimonials.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("CleanupFailuresAreNotFatal", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "u2").Return(&entity.User{ID: "u2"}, nil).Once()
		f.users.On("Delete", ctx, "u2").Return(nil).Once()
		f.users.On("ClearBlockedBy", ctx, "u2").Return(int64(0), errors.New("timeout")).Once()
		f.testimonials.On("DeleteByUserID", ctx, "u2").Return(errors.New("timeout")).Once()
		f.cache.On("Delete", ctx, mock.Anything).Return(errors.New("redis down")).Once()
		f.publisher.On("Publish", ctx, SubjectUserDeleted, mock.Anything).Return(errors.New("nats down")).Once()

		assert.NoError(t, f.uc.Delete(ctx, admin, "u2"))
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newUserFixture()
		f.users.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound).Once()
		err := f.uc.Delete(ctx, admin, "missing")
		assert.ErrorIs(t, err, entity.ErrNotFound)
		assert.EqualError(t, err, "User not found")
	})
}

func TestUserUseCase_BlockUnblock(t *testing.T) {
	ctx := context.Background()
	admin := session("admin1", entity.RoleAdmin)

	t.Run("RequiresReason", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Block(ctx, admin, "u2", "   ")
		assert.ErrorIs(t, err, entity.ErrValidation)
	})

	t.Run("NotSelf", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Block(ctx, admin, "admin1", "test")
		assert.ErrorIs(t, err, entity.ErrValidation)
	})

	t.Run("NonAdmin", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.uc.Block(ctx, session("u3", entity.RoleVet), "u2", "spam")
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("BlockThenUnblock", func(t *testing.T) {
		f := newUserFixture()
		user := &entity.User{ID: "u2", IsActive: true}
		f.users.On("GetByID", ctx, "u2").Return(user, nil).Twice()
		f.users.On("SetBlocked", ctx, user).Return(nil).Twice()
		f.publisher.On("Publish", ctx, SubjectUserBlocked, mock.Anything).Return(nil).Once()
		f.publisher.On("Publish", ctx, SubjectUserUnblocked, mock.Anything).Return(nil).Once()

		blocked, err := f.uc.Block(ctx, admin, "u2", "spam")
		require.NoError(t, err)
		assert.True(t, blocked.IsBlocked)
		assert.Equal(t, "admin1", blocked.BlockedBy)
		assert.Equal(t, "spam", blocked.BlockReason)
		require.NotNil(t, blocked.BlockedAt)
		assert.Equal(t, fixedNow, *blocked.BlockedAt)

		unblocked, err := f.uc.Unblock(ctx, admin, "u2")
		require.NoError(t, err)
		assert.False(t, unblocked.IsBlocked)
		assert.Empty(t, unblocked.BlockedBy)
		assert.Empty(t, unblocked.BlockReason)
		assert.Nil(t, unblocked.BlockedAt)
		f.publisher.AssertExpectations(t)
	})
}

func TestUserUseCase_ChangeRole_Self(t *testing.T) {
	f := newUserFixture()
	_, err := f.uc.ChangeRole(context.Background(), session("admin1", entity.RoleAdmin), "admin1", entity.RoleUser)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUserUseCase_Stats(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.users.On("Stats", ctx, entity.StartOfMonth(fixedNow)).Return(&entity.UserStats{Total: 25, Active: 20, Blocked: 2}, nil).Once()
	f.posts.On("CountByStatus", ctx).Return(map[entity.PostStatus]int64{entity.PostStatusActive: 7}, nil).Once()
	f.reports.On("CountByStatus", ctx, entity.ReportPending).Return(int64(4), nil).Once()
	f.testimonials.On("CountPending", ctx).Return(int64(1), nil).Once()

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), stats.Users.Total)
	assert.Equal(t, int64(7), stats.Posts[entity.PostStatusActive])
	assert.Equal(t, int64(4), stats.PendingReports)
	assert.Equal(t, int64(1), stats.PendingTestimonials)
}
