package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/metrics"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository/mocks"
)

const testPassword = "Secret123"

func newAuthUseCase(t *testing.T, users *mocks.UserRepository, mailer Mailer) *AuthUseCase {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", "safetails", "safetails-users", 7*24*time.Hour)
	uc := NewAuthUseCase(users, tokens, mailer, metrics.NewMetricsManager("test"), "http://localhost:3000/", testLogger())
	uc.now = clock
	return uc
}

func storedUser(t *testing.T, id string) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	return &entity.User{
		ID:          id,
		Name:        "Jane",
		Email:       "jane@example.com",
		Password:    hash,
		Role:        entity.RoleUser,
		Permissions: entity.DefaultPermissions(),
		IsActive:    true,
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		user := storedUser(t, "u1")
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
		users.On("TouchLastLogin", ctx, "u1", fixedNow).Return(nil).Once()

		res, err := uc.Login(ctx, "  Jane@Example.com ", testPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		require.NotNil(t, res.User.LastLogin)
		assert.Equal(t, fixedNow, *res.User.LastLogin)
		users.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := uc.Login(ctx, "nobody@example.com", testPassword)
		assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		users.On("GetByEmail", ctx, "jane@example.com").Return(storedUser(t, "u1"), nil).Once()

		_, err := uc.Login(ctx, "jane@example.com", "Wrong1234")
		assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
		users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BlockedWinsOverPassword", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		user := storedUser(t, "u1")
		user.Block("admin1", "spam", fixedNow)
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Twice()

		for _, pw := range []string{testPassword, "Wrong1234"} {
			_, err := uc.Login(ctx, "jane@example.com", pw)
			var blocked *entity.BlockedError
			require.ErrorAs(t, err, &blocked)
			assert.Equal(t, "spam", blocked.Reason)
		}
	})

	t.Run("Inactive", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		user := storedUser(t, "u1")
		user.IsActive = false
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()

		_, err := uc.Login(ctx, "jane@example.com", testPassword)
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	uc := newAuthUseCase(t, users, nil)
	user := storedUser(t, "u1")

	users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
	users.On("TouchLastLogin", ctx, "u1", fixedNow).Return(nil).Once()
	res, err := uc.Login(ctx, "jane@example.com", testPassword)
	require.NoError(t, err)

	users.On("GetByID", ctx, "u1").Return(user, nil).Once()
	s, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, entity.RoleUser, s.Role)

	blocked := *user
	blocked.Block("admin1", "abuse", fixedNow)
	users.On("GetByID", ctx, "u1").Return(&blocked, nil).Once()
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, entity.ErrAccountBlocked)

	users.On("GetByID", ctx, "u1").Return(nil, repository.ErrNotFound).Once()
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)

	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	users.AssertExpectations(t)
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsVerificationLink", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(MockMailer)
		uc := newAuthUseCase(t, users, mailer)
		users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return("u1", nil).Once()
		mailer.On("SendVerification", ctx, "new@example.com", "New User",
			mock.MatchedBy(func(link string) bool {
				return strings.HasPrefix(link, "http://localhost:3000/api/auth/verify-email?token=")
			})).Return(nil).Once()

		user, err := uc.Register(ctx, RegisterInput{Name: "New User", Email: "New@Example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, entity.RoleUser, user.Role)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEqual(t, testPassword, user.Password)
		require.NotNil(t, user.EmailVerificationExpires)
		assert.Equal(t, fixedNow.Add(24*time.Hour), *user.EmailVerificationExpires)
		mailer.AssertExpectations(t)
	})

	t.Run("MailFailureIsNotFatal", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(MockMailer)
		uc := newAuthUseCase(t, users, mailer)
		users.On("Create", ctx, mock.Anything).Return("u2", nil).Once()
		mailer.On("SendVerification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err := uc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: testPassword})
		assert.NoError(t, err)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		users.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicate).Once()

		_, err := uc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: testPassword})
		assert.ErrorIs(t, err, entity.ErrConflict)
		assert.EqualError(t, err, "User with this email already exists")
	})

	t.Run("RejectsAdminAndWeakPassword", func(t *testing.T) {
		uc := newAuthUseCase(t, new(mocks.UserRepository), nil)
		_, err := uc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: testPassword, Role: entity.RoleAdmin})
		assert.ErrorIs(t, err, entity.ErrValidation)
		_, err = uc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
		assert.ErrorIs(t, err, entity.ErrValidation)
		_, err = uc.Register(ctx, RegisterInput{Name: "V", Email: "v@example.com", Password: testPassword, Role: entity.RoleVet})
		assert.ErrorIs(t, err, entity.ErrValidation)
	})
}

func TestAuthUseCase_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, new(MockMailer))
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()
		assert.NoError(t, uc.ForgotPassword(ctx, "ghost@example.com"))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(MockMailer)
		uc := newAuthUseCase(t, users, mailer)
		user := storedUser(t, "u1")
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
		users.On("Update", ctx, user).Return(nil)
		mailer.On("SendPasswordReset", ctx, "jane@example.com", "Jane", mock.Anything).Return(nil).Once()

		require.NoError(t, uc.ForgotPassword(ctx, "jane@example.com"))
		token := user.PasswordResetToken
		require.NotEmpty(t, token)

		users.On("GetByResetToken", ctx, token).Return(user, nil).Once()
		require.NoError(t, uc.ResetPassword(ctx, token, "NewSecret1"))
		assert.True(t, auth.CheckPassword(user.Password, "NewSecret1"))
		assert.Empty(t, user.PasswordResetToken)
		assert.Nil(t, user.PasswordResetExpires)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		users := new(mocks.UserRepository)
		uc := newAuthUseCase(t, users, nil)
		user := storedUser(t, "u1")
		user.PasswordResetToken = "tok"
		user.PasswordResetExpires = ptr(fixedNow.Add(-time.Minute))
		users.On("GetByResetToken", ctx, "tok").Return(user, nil).Once()

		err := uc.ResetPassword(ctx, "tok", "NewSecret1")
		assert.ErrorIs(t, err, entity.ErrValidation)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthUseCase_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	uc := newAuthUseCase(t, users, nil)
	user := storedUser(t, "u1")
	user.EmailVerificationToken = "vtok"
	user.EmailVerificationExpires = ptr(fixedNow.Add(time.Hour))
	users.On("GetByVerificationToken", ctx, "vtok").Return(user, nil).Once()
	users.On("Update", ctx, user).Return(nil).Once()

	require.NoError(t, uc.VerifyEmail(ctx, "vtok"))
	assert.True(t, user.IsEmailVerified)
	assert.Empty(t, user.EmailVerificationToken)

	users.On("GetByVerificationToken", ctx, "nope").Return(nil, repository.ErrNotFound).Once()
	assert.ErrorIs(t, uc.VerifyEmail(ctx, "nope"), entity.ErrValidation)
}

func TestAuthUseCase_UpdateProfile_PasswordChange(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	uc := newAuthUseCase(t, users, nil)
	user := storedUser(t, "u1")
	users.On("GetByID", ctx, "u1").Return(user, nil)
	s := session("u1", entity.RoleUser)

	_, err := uc.UpdateProfile(ctx, s, ProfileInput{CurrentPassword: "Wrong1234", NewPassword: "NewSecret1"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	users.On("Update", ctx, user).Return(nil).Once()
	updated, err := uc.UpdateProfile(ctx, s, ProfileInput{Bio: ptr("rescuer"), CurrentPassword: testPassword, NewPassword: "NewSecret1"})
	require.NoError(t, err)
	assert.Equal(t, "rescuer", updated.Bio)
	assert.True(t, auth.CheckPassword(updated.Password, "NewSecret1"))
}

func TestAuthUseCase_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	uc := newAuthUseCase(t, users, nil)

	users.On("GetByEmail", ctx, "root@example.com").Return(nil, repository.ErrNotFound).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleAdmin && u.IsActive && u.Name == "Administrator"
	})).Return("a1", nil).Once()
	require.NoError(t, uc.SeedAdmin(ctx, "Root@Example.com", testPassword, ""))

	users.On("GetByEmail", ctx, "root@example.com").Return(&entity.User{ID: "a1", Role: entity.RoleAdmin}, nil).Once()
	require.NoError(t, uc.SeedAdmin(ctx, "root@example.com", testPassword, ""))

	assert.NoError(t, uc.SeedAdmin(ctx, "", "", ""))
	users.AssertExpectations(t)
}
