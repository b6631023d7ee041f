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
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/metrics"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const (
	verificationTTL  = 24 * time.Hour
	passwordResetTTL = time.Hour
)

var errInvalidLogin = entity.NewError(entity.ErrInvalidCredentials, "Invalid email or password")

type AuthUseCase struct {
	users   repository.UserRepository
	tokens  *auth.TokenManager
	mailer  Mailer
	metrics *metrics.MetricsManager
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthUseCase(
	users repository.UserRepository,
	tokens *auth.TokenManager,
	mailer Mailer,
	m *metrics.MetricsManager,
	baseURL string,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		metrics: m,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.Named("AuthUseCase"),
		now:     time.Now,
	}
}

type LoginResult struct {
	User  *entity.User
	Token string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUseCase) loginFailed(reason string) {
	if uc.metrics != nil {
		uc.metrics.LoginFailuresTotal.WithLabelValues(reason).Inc()
	}
}

// Login checks the block flag before the password so blocked accounts always
// receive the distinguished blocked error.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.loginFailed("unknown_email")
			return nil, errInvalidLogin
		}
		return nil, fmt.Errorf("AuthUseCase.Login: failed to load user: %w", err)
	}
	if user.IsBlocked {
		uc.loginFailed("blocked")
		uc.logger.Info("Blocked user attempted login", zap.String("userID", user.ID))
		return nil, &entity.BlockedError{Reason: user.BlockReason}
	}
	if !auth.CheckPassword(user.Password, password) {
		uc.loginFailed("bad_password")
		return nil, errInvalidLogin
	}
	if !user.IsActive {
		uc.loginFailed("inactive")
		return nil, entity.NewError(entity.ErrForbidden, "Account is deactivated")
	}

	now := uc.now().UTC()
	if err := uc.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		uc.logger.Warn("Failed to record last login", zap.String("userID", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("AuthUseCase.Login: failed to issue token: %w", err)
	}
	uc.logger.Info("User logged in", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{User: user, Token: token}, nil
}

// Authenticate verifies the token and reloads the user, so a block or
// deactivation takes effect on the next request.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*auth.Session, error) {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, entity.NewError(entity.ErrUnauthenticated, "Invalid or expired token")
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewError(entity.ErrUnauthenticated, "User no longer exists")
		}
		return nil, fmt.Errorf("AuthUseCase.Authenticate: failed to load user: %w", err)
	}
	if user.IsBlocked {
		return nil, &entity.BlockedError{Reason: user.BlockReason}
	}
	if !user.IsActive {
		return nil, entity.NewError(entity.ErrForbidden, "Account is deactivated")
	}
	return auth.SessionFromUser(user), nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Phone    string
	VetInfo  *entity.VetInfo
}

func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	switch in.Role {
	case "":
		in.Role = entity.RoleUser
	case entity.RoleUser:
	case entity.RoleVet:
		if in.VetInfo == nil || strings.TrimSpace(in.VetInfo.LicenseNumber) == "" {
			return nil, entity.NewValidationError("vetInfo.licenseNumber", "License number is required for veterinarians")
		}
	default:
		return nil, entity.NewValidationError("role", "Role must be user or vet")
	}
	if !auth.StrongPassword(in.Password) {
		return nil, entity.NewValidationError("password", auth.PasswordPolicy)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("AuthUseCase.Register: %w", err)
	}

	now := uc.now().UTC()
	expires := now.Add(verificationTTL)
	user := &entity.User{
		Name:                     strings.TrimSpace(in.Name),
		Email:                    normalizeEmail(in.Email),
		Password:                 hash,
		Role:                     in.Role,
		Phone:                    in.Phone,
		Permissions:              entity.DefaultPermissions(),
		IsActive:                 true,
		EmailVerificationToken:   auth.NewOpaqueToken(),
		EmailVerificationExpires: &expires,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if in.Role == entity.RoleVet {
		user.VetInfo = in.VetInfo
	}

	id, err := uc.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewError(entity.ErrConflict, "User with this email already exists")
		}
		return nil, fmt.Errorf("AuthUseCase.Register: failed to create user: %w", err)
	}
	user.ID = id
	uc.logger.Info("User registered", zap.String("userID", id), zap.String("role", string(user.Role)))

	if uc.mailer != nil {
		link := uc.baseURL + "/api/auth/verify-email?token=" + user.EmailVerificationToken
		if err := uc.mailer.SendVerification(ctx, user.Email, user.Name, link); err != nil {
			uc.logger.Warn("Failed to send verification email", zap.String("userID", id), zap.Error(err))
		}
	}
	return user, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, s *auth.Session) (*entity.User, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, repoErr(err, "User")
	}
	return user, nil
}

type ProfileInput struct {
	Name            *string
	Phone           *string
	Address         *string
	Bio             *string
	ProfileImage    *string
	CurrentPassword string
	NewPassword     string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, s *auth.Session, in ProfileInput) (*entity.User, error) {
	user, err := uc.Me(ctx, s)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, entity.NewValidationError("name", "Name cannot be empty")
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	if in.NewPassword != "" {
		if !auth.CheckPassword(user.Password, in.CurrentPassword) {
			return nil, entity.NewValidationError("currentPassword", "Current password is incorrect")
		}
		if !auth.StrongPassword(in.NewPassword) {
			return nil, entity.NewValidationError("newPassword", auth.PasswordPolicy)
		}
		if user.Password, err = auth.HashPassword(in.NewPassword); err != nil {
			return nil, fmt.Errorf("AuthUseCase.UpdateProfile: %w", err)
		}
	}
	user.UpdatedAt = uc.now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, repoErr(err, "User")
	}
	return user, nil
}

// ForgotPassword never reveals whether the email is registered.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.logger.Debug("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("AuthUseCase.ForgotPassword: %w", err)
	}
	expires := uc.now().UTC().Add(passwordResetTTL)
	user.PasswordResetToken = auth.NewOpaqueToken()
	user.PasswordResetExpires = &expires
	if err := uc.users.Update(ctx, user); err != nil {
		return fmt.Errorf("AuthUseCase.ForgotPassword: failed to store reset token: %w", err)
	}
	if uc.mailer != nil {
		link := uc.baseURL + "/reset-password?token=" + user.PasswordResetToken
		if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, link); err != nil {
			uc.logger.Warn("Failed to send password reset email", zap.String("userID", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	invalid := entity.NewValidationError("token", "Invalid or expired reset token")
	if token == "" {
		return invalid
	}
	user, err := uc.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid
		}
		return fmt.Errorf("AuthUseCase.ResetPassword: %w", err)
	}
	now := uc.now().UTC()
	if user.PasswordResetExpires == nil || now.After(*user.PasswordResetExpires) {
		return invalid
	}
	if !auth.StrongPassword(newPassword) {
		return entity.NewValidationError("password", auth.PasswordPolicy)
	}
	if user.Password, err = auth.HashPassword(newPassword); err != nil {
		return fmt.Errorf("AuthUseCase.ResetPassword: %w", err)
	}
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return repoErr(err, "User")
	}
	uc.logger.Info("Password reset", zap.String("userID", user.ID))
	return nil
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	invalid := entity.NewValidationError("token", "Invalid or expired verification token")
	if token == "" {
		return invalid
	}
	user, err := uc.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid
		}
		return fmt.Errorf("AuthUseCase.VerifyEmail: %w", err)
	}
	now := uc.now().UTC()
	if user.EmailVerificationExpires == nil || now.After(*user.EmailVerificationExpires) {
		return invalid
	}
	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return repoErr(err, "User")
	}
	return nil
}

// SeedAdmin creates the first administrator when it does not exist yet.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			uc.logger.Warn("Bootstrap admin email belongs to a non-admin account", zap.String("email", email))
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("AuthUseCase.SeedAdmin: %w", err)
	}
	if !auth.StrongPassword(password) {
		return fmt.Errorf("AuthUseCase.SeedAdmin: %s", auth.PasswordPolicy)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("AuthUseCase.SeedAdmin: %w", err)
	}
	if name == "" {
		name = "Administrator"
	}
	now := uc.now().UTC()
	id, err := uc.users.Create(ctx, &entity.User{
		Name:            name,
		Email:           email,
		Password:        hash,
		Role:            entity.RoleAdmin,
		Permissions:     entity.DefaultPermissions(),
		IsActive:        true,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return fmt.Errorf("AuthUseCase.SeedAdmin: failed to create admin: %w", err)
	}
	uc.logger.Info("Bootstrap admin created", zap.String("userID", id))
	return nil
}
