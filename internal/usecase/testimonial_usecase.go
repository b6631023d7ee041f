package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/cache"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

const maxTestimonialLength = 500

var (
	errAlreadyReviewed = entity.NewError(entity.ErrInvalidState, "You have already submitted a review")
	errNoReview        = entity.NewError(entity.ErrNotFound, "You have not submitted a review yet")
)

// TestimonialUseCase manages the site reviews users leave, one per user.
type TestimonialUseCase struct {
	testimonials repository.TestimonialRepository
	cache        cache.CacheRepository
	cacheTTL     time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewTestimonialUseCase(testimonials repository.TestimonialRepository, c cache.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *TestimonialUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &TestimonialUseCase{
		testimonials: testimonials,
		cache:        c,
		cacheTTL:     cacheTTL,
		logger:       logger.Named("TestimonialUseCase"),
		now:          time.Now,
	}
}

func validateTestimonial(content string, rating int) error {
	verr := &entity.ValidationError{Fields: map[string]string{}}
	switch {
	case content == "":
		verr.Fields["content"] = "Content is required"
	case utf8.RuneCountInString(content) > maxTestimonialLength:
		verr.Fields["content"] = fmt.Sprintf("Content cannot exceed %d characters", maxTestimonialLength)
	}
	if !entity.ValidRating(rating) {
		verr.Fields["rating"] = "Rating must be between 1 and 5"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (uc *TestimonialUseCase) invalidate(ctx context.Context) {
	cacheDelete(ctx, uc.cache, uc.logger, approvedTestimonialsKey)
}

// Mine returns the caller's testimonial, or nil when there is none.
func (uc *TestimonialUseCase) Mine(ctx context.Context, s *auth.Session) (*entity.Testimonial, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	t, err := uc.testimonials.GetByUserID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("TestimonialUseCase.Mine: %w", err)
	}
	return t, nil
}

// Create enforces one testimonial per user with a lookup before the insert.
// Two concurrent submissions can both pass the lookup.
func (uc *TestimonialUseCase) Create(ctx context.Context, s *auth.Session, content string, rating int) (*entity.Testimonial, error) {
	existing, err := uc.Mine(ctx, s)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errAlreadyReviewed
	}
	content = strings.TrimSpace(content)
	if err := validateTestimonial(content, rating); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	t := &entity.Testimonial{
		UserID:    s.UserID,
		UserName:  s.Name,
		Content:   content,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := uc.testimonials.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("TestimonialUseCase.Create: %w", err)
	}
	t.ID = id
	uc.invalidate(ctx)
	return t, nil
}

// Update edits the caller's testimonial; any edit sends it back to review.
func (uc *TestimonialUseCase) Update(ctx context.Context, s *auth.Session, content string, rating int) (*entity.Testimonial, error) {
	t, err := uc.Mine(ctx, s)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errNoReview
	}
	content = strings.TrimSpace(content)
	if err := validateTestimonial(content, rating); err != nil {
		return nil, err
	}
	t.Content = content
	t.Rating = rating
	t.IsApproved = false
	t.UpdatedAt = uc.now().UTC()
	if err := uc.testimonials.Update(ctx, t); err != nil {
		return nil, repoErr(err, "Review")
	}
	uc.invalidate(ctx)
	return t, nil
}

func (uc *TestimonialUseCase) Delete(ctx context.Context, s *auth.Session) error {
	t, err := uc.Mine(ctx, s)
	if err != nil {
		return err
	}
	if t == nil {
		return errNoReview
	}
	if err := uc.testimonials.Delete(ctx, t.ID); err != nil {
		return repoErr(err, "Review")
	}
	uc.invalidate(ctx)
	return nil
}

// Public lists the newest approved testimonials.
func (uc *TestimonialUseCase) Public(ctx context.Context) ([]*entity.Testimonial, error) {
	var cached []*entity.Testimonial
	if cacheGet(ctx, uc.cache, uc.logger, approvedTestimonialsKey, &cached) {
		return cached, nil
	}
	list, err := uc.testimonials.ListApproved(ctx, entity.PublicTestimonialLimit)
	if err != nil {
		return nil, fmt.Errorf("TestimonialUseCase.Public: %w", err)
	}
	if list == nil {
		list = []*entity.Testimonial{}
	}
	cacheSet(ctx, uc.cache, uc.logger, approvedTestimonialsKey, list, uc.cacheTTL)
	return list, nil
}

func (uc *TestimonialUseCase) AdminList(ctx context.Context, f repository.TestimonialFilter) ([]*entity.Testimonial, entity.Pagination, error) {
	list, total, err := uc.testimonials.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("TestimonialUseCase.AdminList: %w", err)
	}
	return list, entity.NewPagination(f.Page, total), nil
}

func (uc *TestimonialUseCase) SetApproval(ctx context.Context, id string, approved bool) (*entity.Testimonial, error) {
	if err := uc.testimonials.SetApproval(ctx, id, approved); err != nil {
		return nil, repoErr(err, "Review")
	}
	uc.invalidate(ctx)
	t, err := uc.testimonials.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Review")
	}
	return t, nil
}

func (uc *TestimonialUseCase) AdminDelete(ctx context.Context, id string) error {
	if err := uc.testimonials.Delete(ctx, id); err != nil {
		return repoErr(err, "Review")
	}
	uc.invalidate(ctx)
	return nil
}
