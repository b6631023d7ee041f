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
	"github.com/ahsanauddry027/safetails-sub000/internal/wizard"
)

var (
	errPostAlreadyResolved = entity.NewError(entity.ErrInvalidState, "Post is already resolved")
	errPostNotActive       = entity.NewError(entity.ErrInvalidState, "Only active posts can be changed")
	errCommentsClosed      = entity.NewError(entity.ErrInvalidState, "Comments are only allowed on active posts")
)

type PetPostUseCase struct {
	posts     repository.PetPostRepository
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *zap.Logger
	now       func() time.Time
}

func NewPetPostUseCase(posts repository.PetPostRepository, publisher EventPublisher, m *metrics.MetricsManager, logger *zap.Logger) *PetPostUseCase {
	return &PetPostUseCase{
		posts:     posts,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("PetPostUseCase"),
		now:       time.Now,
	}
}

type CreatePetPostInput struct {
	PostType          entity.PostType
	Pet               entity.PetDetails
	Description       string
	Images            []string
	Address           string
	City              string
	State             string
	Latitude          *float64
	Longitude         *float64
	ContactPhone      string
	LastSeenDate      *time.Time
	InjuryDescription string
}

func (in CreatePetPostInput) formValues() map[string]string {
	return map[string]string{
		"petName":           in.Pet.Name,
		"petType":           in.Pet.Type,
		"petBreed":          in.Pet.Breed,
		"petColor":          in.Pet.Color,
		"petAge":            in.Pet.Age,
		"petGender":         in.Pet.Gender,
		"petSize":           in.Pet.Size,
		"description":       in.Description,
		"contactPhone":      in.ContactPhone,
		"lastSeenDate":      optionalTime(in.LastSeenDate),
		"injuryDescription": in.InjuryDescription,
		"address":           in.Address,
		"city":              in.City,
		"state":             in.State,
		"latitude":          optionalFloat(in.Latitude),
		"longitude":         optionalFloat(in.Longitude),
	}
}

func (uc *PetPostUseCase) Create(ctx context.Context, s *auth.Session, in CreatePetPostInput) (*entity.PetPost, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	if !s.Permissions.CanPost {
		return nil, entity.NewError(entity.ErrForbidden, "You are not allowed to create posts")
	}
	if !in.PostType.IsValid() {
		return nil, entity.NewValidationError("postType", "postType must be one of missing, emergency, wounded")
	}
	def, err := wizard.Lookup(wizard.PostKind(string(in.PostType)))
	if err != nil {
		return nil, fmt.Errorf("PetPostUseCase.Create: %w", err)
	}
	if err := def.Validate(in.formValues()); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	post := &entity.PetPost{
		UserID:            s.UserID,
		PostType:          in.PostType,
		Pet:               in.Pet,
		Description:       strings.TrimSpace(in.Description),
		Images:            in.Images,
		Location:          pointOrOrigin(in.Latitude, in.Longitude, in.Address),
		City:              in.City,
		State:             in.State,
		ContactPhone:      in.ContactPhone,
		LastSeenDate:      in.LastSeenDate,
		InjuryDescription: in.InjuryDescription,
		Status:            entity.PostStatusActive,
		Comments:          []entity.PostComment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	id, err := uc.posts.Create(ctx, post)
	if err != nil {
		uc.logger.Error("Failed to create pet post", zap.Error(err), zap.String("userID", s.UserID))
		return nil, fmt.Errorf("PetPostUseCase.Create: %w", err)
	}
	post.ID = id
	if uc.metrics != nil {
		uc.metrics.PostsCreatedTotal.Inc()
	}
	publish(ctx, uc.publisher, uc.logger, SubjectPostCreated, PostEvent{
		PostID: id, UserID: s.UserID, PostType: post.PostType, Status: post.Status, City: post.City, At: now,
	})
	return post, nil
}

func (uc *PetPostUseCase) List(ctx context.Context, f repository.PetPostFilter) ([]*entity.PetPost, entity.Pagination, error) {
	posts, total, err := uc.posts.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("PetPostUseCase.List: %w", err)
	}
	return posts, entity.NewPagination(f.Page, total), nil
}

// Get returns the post and counts the read: every call increments views.
func (uc *PetPostUseCase) Get(ctx context.Context, id string) (*entity.PetPost, error) {
	post, err := uc.posts.IncrementViews(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Post")
	}
	return post, nil
}

// Apply runs a PATCH action against the post.
func (uc *PetPostUseCase) Apply(ctx context.Context, s *auth.Session, id string, action entity.PostAction, content string) (*entity.PetPost, error) {
	switch action {
	case entity.PostActionComment:
		return uc.Comment(ctx, s, id, content)
	case entity.PostActionResolve:
		return uc.Resolve(ctx, s, id)
	case entity.PostActionClose:
		return uc.Close(ctx, s, id)
	}
	return nil, entity.NewValidationError("action", "Invalid action")
}

func (uc *PetPostUseCase) Comment(ctx context.Context, s *auth.Session, id, content string) (*entity.PetPost, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	if !s.Permissions.CanComment {
		return nil, entity.NewError(entity.ErrForbidden, "You are not allowed to comment")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, entity.NewValidationError("content", "Comment content is required")
	}
	post, err := uc.posts.AddComment(ctx, id, entity.PostComment{
		UserID:    s.UserID,
		UserName:  s.Name,
		Content:   content,
		CreatedAt: uc.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, errCommentsClosed
		}
		return nil, repoErr(err, "Post")
	}
	return post, nil
}

// Resolve is allowed for the owner, any vet and any admin. The store update
// is conditional on the post being active, so a repeated resolve leaves the
// first resolver and time in place.
func (uc *PetPostUseCase) Resolve(ctx context.Context, s *auth.Session, id string) (*entity.PetPost, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Post")
	}
	if err := auth.Authorize(s, auth.IsOwner(post.UserID), auth.HasRole(entity.RoleVet, entity.RoleAdmin)); err != nil {
		return nil, err
	}
	switch post.Status {
	case entity.PostStatusResolved:
		return nil, errPostAlreadyResolved
	case entity.PostStatusActive:
	default:
		return nil, errPostNotActive
	}

	now := uc.now().UTC()
	resolved, err := uc.posts.Resolve(ctx, id, s.UserID, now)
	if err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, errPostAlreadyResolved
		}
		return nil, repoErr(err, "Post")
	}
	if uc.metrics != nil {
		uc.metrics.PostsResolvedTotal.Inc()
	}
	publish(ctx, uc.publisher, uc.logger, SubjectPostResolved, PostEvent{
		PostID: id, UserID: resolved.UserID, ActorID: s.UserID, PostType: resolved.PostType, Status: resolved.Status, City: resolved.City, At: now,
	})
	return resolved, nil
}

func (uc *PetPostUseCase) Close(ctx context.Context, s *auth.Session, id string) (*entity.PetPost, error) {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	post, err := uc.posts.Close(ctx, id, s.UserID, uc.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrConditionFailed) {
			return nil, errPostNotActive
		}
		return nil, repoErr(err, "Post")
	}
	uc.logger.Info("Pet post closed", zap.String("postID", id), zap.String("by", s.UserID))
	return post, nil
}

func (uc *PetPostUseCase) Delete(ctx context.Context, s *auth.Session, id string) error {
	if err := auth.Authorize(s, auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.posts.Delete(ctx, id); err != nil {
		return repoErr(err, "Post")
	}
	uc.logger.Info("Pet post deleted", zap.String("postID", id), zap.String("by", s.UserID))
	return nil
}
