package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/cache"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
)

// EventPublisher emits domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

type ImageStorage interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, ext string) (string, error)
}

const (
	SubjectPostCreated   = "safetails.post.created"
	SubjectPostResolved  = "safetails.post.resolved"
	SubjectAlertCreated  = "safetails.alert.created"
	SubjectUserBlocked   = "safetails.user.blocked"
	SubjectUserUnblocked = "safetails.user.unblocked"
	SubjectUserDeleted   = "safetails.user.deleted"
	SubjectReportCreated = "safetails.report.created"
)

const (
	defaultCacheTTL         = 5 * time.Minute
	approvedTestimonialsKey = "testimonials:approved"
)

type PostEvent struct {
	PostID   string            `json:"postId"`
	UserID   string            `json:"userId"`
	ActorID  string            `json:"actorId,omitempty"`
	PostType entity.PostType   `json:"postType"`
	Status   entity.PostStatus `json:"status"`
	City     string            `json:"city,omitempty"`
	At       time.Time         `json:"at"`
}

type AlertEvent struct {
	AlertID   string           `json:"alertId"`
	CreatedBy string           `json:"createdBy"`
	Type      entity.AlertType `json:"type"`
	Urgency   entity.Urgency   `json:"urgency"`
	City      string           `json:"city"`
	RadiusKm  float64          `json:"radiusKm"`
	At        time.Time        `json:"at"`
}

type UserEvent struct {
	UserID  string    `json:"userId"`
	ActorID string    `json:"actorId"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

type ReportEvent struct {
	ReportID   string              `json:"reportId"`
	ReporterID string              `json:"reporterId"`
	TargetType entity.ReportTarget `json:"targetType"`
	TargetID   string              `json:"targetId"`
	At         time.Time           `json:"at"`
}

func publish(ctx context.Context, p EventPublisher, logger *zap.Logger, subject string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil {
		logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// repoErr turns repository sentinels into client-facing domain errors. what
// names the record, e.g. "Post".
func repoErr(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return entity.NewError(entity.ErrNotFound, what+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return entity.NewError(entity.ErrConflict, what+" already exists")
	}
	return err
}

func cacheGet(ctx context.Context, c cache.CacheRepository, logger *zap.Logger, key string, dst any) bool {
	if c == nil {
		return false
	}
	data, err := c.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		cacheDelete(ctx, c, logger, key)
		return false
	}
	logger.Debug("Cache hit", zap.String("key", key))
	return true
}

func cacheSet(ctx context.Context, c cache.CacheRepository, logger *zap.Logger, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheDelete(ctx context.Context, c cache.CacheRepository, logger *zap.Logger, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func vetCacheKey(id string) string {
	return fmt.Sprintf("vet:%s", id)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}

func optionalTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// pointOrOrigin builds a location, defaulting to [0,0] when coordinates are
// absent.
func pointOrOrigin(lat, lng *float64, address string) entity.Location {
	var la, ln float64
	if lat != nil {
		la = *lat
	}
	if lng != nil {
		ln = *lng
	}
	return entity.NewLocation(ln, la, address)
}
