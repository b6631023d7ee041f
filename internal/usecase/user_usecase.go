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

var errEmailTaken = entity.NewError(entity.ErrConflict, "User with this email already exists")

// UserUseCase holds the administrator operations on accounts.
type UserUseCase struct {
	users        repository.UserRepository
	posts        repository.PetPostRepository
	testimonials repository.TestimonialRepository
	reports      repository.ReportRepository
	publisher    EventPublisher
	cache        cache.CacheRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewUserUseCase(
	users repository.UserRepository,
	posts repository.PetPostRepository,
	testimonials repository.TestimonialRepository,
	reports repository.ReportRepository,
	publisher EventPublisher,
	c cache.CacheRepository,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		posts:        posts,
		testimonials: testimonials,
		reports:      reports,
		publisher:    publisher,
		cache:        c,
		logger:       logger.Named("UserUseCase"),
		now:          time.Now,
	}
}

func (uc *UserUseCase) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, entity.Pagination, error) {
	users, total, err := uc.users.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("UserUseCase.List: %w", err)
	}
	return users, entity.NewPagination(f.Page, total), nil
}

func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "User")
	}
	return user, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
	Phone    string
}

func (uc *UserUseCase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	if !in.Role.IsValid() {
		return nil, entity.NewValidationError("role", "Role must be user, vet or admin")
	}
	if !auth.StrongPassword(in.Password) {
		return nil, entity.NewValidationError("password", auth.PasswordPolicy)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.Create: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       normalizeEmail(in.Email),
		Password:    hash,
		Role:        in.Role,
		Phone:       in.Phone,
		Permissions: entity.DefaultPermissions(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := uc.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("UserUseCase.Create: %w", err)
	}
	user.ID = id
	uc.logger.Info("User created by admin", zap.String("userID", id), zap.String("role", string(user.Role)))
	return user, nil
}

type UpdateUserInput struct {
	Name        *string
	Email       *string
	Role        *entity.Role
	Phone       *string
	IsActive    *bool
	Permissions *entity.Permissions
	Password    *string
}

var (
	errOwnRole       = entity.NewValidationError("role", "You cannot change your own role")
	errOwnDeactivate = entity.NewValidationError("isActive", "You cannot deactivate your own account")
)

// Update applies an admin edit. Admins cannot change their own role or
// deactivate themselves.
func (uc *UserUseCase) Update(ctx context.Context, actor *auth.Session, id string, in UpdateUserInput) (*entity.User, error) {
	user, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.UserID == id {
		if in.Role != nil && *in.Role != user.Role {
			return nil, errOwnRole
		}
		if in.IsActive != nil && !*in.IsActive {
			return nil, errOwnDeactivate
		}
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, entity.NewValidationError("role", "Role must be user, vet or admin")
		}
		user.Role = *in.Role
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Permissions != nil {
		user.Permissions = *in.Permissions
	}
	if in.Password != nil && *in.Password != "" {
		if !auth.StrongPassword(*in.Password) {
			return nil, entity.NewValidationError("password", auth.PasswordPolicy)
		}
		if user.Password, err = auth.HashPassword(*in.Password); err != nil {
			return nil, fmt.Errorf("UserUseCase.Update: %w", err)
		}
	}
	user.UpdatedAt = uc.now().UTC()
	if err := uc.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, repoErr(err, "User")
	}
	return user, nil
}

func (uc *UserUseCase) ChangeRole(ctx context.Context, actor *auth.Session, id string, role entity.Role) (*entity.User, error) {
	if actor != nil && actor.UserID == id {
		return nil, errOwnRole
	}
	return uc.Update(ctx, actor, id, UpdateUserInput{Role: &role})
}

// Delete removes the account. Block records naming the user as blocker are
// cleared and the user's testimonial is removed; authored posts, alerts and
// listings keep their owner reference.
func (uc *UserUseCase) Delete(ctx context.Context, actor *auth.Session, id string) error {
	if actor != nil && actor.UserID == id {
		return entity.NewValidationError("id", "You cannot delete your own account")
	}
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return repoErr(err, "User")
	}

	cleared, err := uc.users.ClearBlockedBy(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to clear blockedBy references", zap.String("userID", id), zap.Error(err))
	}
	if err := uc.testimonials.DeleteByUserID(ctx, id); err != nil {
		uc.logger.Warn("Failed to delete testimonial of removed user", zap.String("userID", id), zap.Error(err))
	}
	cacheDelete(ctx, uc.cache, uc.logger, approvedTestimonialsKey)

	actorID := ""
	if actor != nil {
		actorID = actor.UserID
	}
	uc.logger.Info("User deleted", zap.String("userID", id), zap.String("by", actorID), zap.Int64("blockRefsCleared", cleared))
	publish(ctx, uc.publisher, uc.logger, SubjectUserDeleted, UserEvent{UserID: id, ActorID: actorID, At: uc.now().UTC()})
	return nil
}

func (uc *UserUseCase) Block(ctx context.Context, actor *auth.Session, id, reason string) (*entity.User, error) {
	if err := auth.Authorize(actor, auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, entity.NewValidationError("reason", "Block reason is required")
	}
	if actor.UserID == id {
		return nil, entity.NewValidationError("id", "You cannot block your own account")
	}
	user, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user.Block(actor.UserID, reason, now)
	user.UpdatedAt = now
	if err := uc.users.SetBlocked(ctx, user); err != nil {
		return nil, repoErr(err, "User")
	}
	uc.logger.Info("User blocked", zap.String("userID", id), zap.String("by", actor.UserID))
	publish(ctx, uc.publisher, uc.logger, SubjectUserBlocked, UserEvent{UserID: id, ActorID: actor.UserID, Reason: reason, At: now})
	return user, nil
}

func (uc *UserUseCase) Unblock(ctx context.Context, actor *auth.Session, id string) (*entity.User, error) {
	if err := auth.Authorize(actor, auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	user, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Unblock()
	user.UpdatedAt = uc.now().UTC()
	if err := uc.users.SetBlocked(ctx, user); err != nil {
		return nil, repoErr(err, "User")
	}
	uc.logger.Info("User unblocked", zap.String("userID", id), zap.String("by", actor.UserID))
	publish(ctx, uc.publisher, uc.logger, SubjectUserUnblocked, UserEvent{UserID: id, ActorID: actor.UserID, At: user.UpdatedAt})
	return user, nil
}

func (uc *UserUseCase) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	users, err := uc.users.Stats(ctx, entity.StartOfMonth(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.Stats: users: %w", err)
	}
	posts, err := uc.posts.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.Stats: posts: %w", err)
	}
	pendingReports, err := uc.reports.CountByStatus(ctx, entity.ReportPending)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.Stats: reports: %w", err)
	}
	pendingTestimonials, err := uc.testimonials.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase.Stats: testimonials: %w", err)
	}
	return &entity.DashboardStats{
		Users:               *users,
		Posts:               posts,
		PendingReports:      pendingReports,
		PendingTestimonials: pendingTestimonials,
	}, nil
}
