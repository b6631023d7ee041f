package usecase

import (
	"context"
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

type AlertUseCase struct {
	alerts    repository.AlertRepository
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *zap.Logger
	now       func() time.Time
}

func NewAlertUseCase(alerts repository.AlertRepository, publisher EventPublisher, m *metrics.MetricsManager, logger *zap.Logger) *AlertUseCase {
	return &AlertUseCase{
		alerts:    alerts,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("AlertUseCase"),
		now:       time.Now,
	}
}

type CreateAlertInput struct {
	Type           entity.AlertType
	Title          string
	Description    string
	Urgency        entity.Urgency
	TargetAudience entity.Audience
	Address        string
	City           string
	State          string
	Latitude       *float64
	Longitude      *float64
	RadiusKm       float64
	PetDetails     *entity.PetDetails
	ContactInfo    entity.ContactInfo
	Images         []string
	ExpiresAt      *time.Time
}

func (in CreateAlertInput) formValues() map[string]string {
	return map[string]string{
		"type":           string(in.Type),
		"title":          in.Title,
		"description":    in.Description,
		"urgency":        string(in.Urgency),
		"targetAudience": string(in.TargetAudience),
		"address":        in.Address,
		"city":           in.City,
		"state":          in.State,
		"latitude":       optionalFloat(in.Latitude),
		"longitude":      optionalFloat(in.Longitude),
		"contactPhone":   in.ContactInfo.Phone,
		"contactEmail":   in.ContactInfo.Email,
		"expiresAt":      optionalTime(in.ExpiresAt),
	}
}

func validateAlertEnums(t entity.AlertType, u entity.Urgency, a entity.Audience, st entity.AlertStatus) error {
	verr := &entity.ValidationError{Fields: map[string]string{}}
	if t != "" && !t.IsValid() {
		verr.Fields["type"] = "Invalid alert type"
	}
	if u != "" && !u.IsValid() {
		verr.Fields["urgency"] = "Invalid urgency"
	}
	if a != "" && !a.IsValid() {
		verr.Fields["targetAudience"] = "Invalid target audience"
	}
	if st != "" && !st.IsValid() {
		verr.Fields["status"] = "Invalid status"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (uc *AlertUseCase) Create(ctx context.Context, s *auth.Session, in CreateAlertInput) (*entity.Alert, error) {
	if err := auth.Authorize(s); err != nil {
		return nil, err
	}
	if !s.Permissions.CanCreateAlerts {
		return nil, entity.NewError(entity.ErrForbidden, "You are not allowed to create alerts")
	}
	def, err := wizard.Lookup(wizard.KindAlert)
	if err != nil {
		return nil, fmt.Errorf("AlertUseCase.Create: %w", err)
	}
	if err := def.Validate(in.formValues()); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = entity.AlertTypeGeneral
	}
	if err := validateAlertEnums(in.Type, in.Urgency, in.TargetAudience, ""); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	alert := &entity.Alert{
		Type:           in.Type,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Urgency:        in.Urgency,
		TargetAudience: in.TargetAudience,
		Location: entity.AlertArea{
			Point:    pointOrOrigin(in.Latitude, in.Longitude, in.Address),
			City:     in.City,
			State:    in.State,
			RadiusKm: in.RadiusKm,
		},
		PetDetails:  in.PetDetails,
		ContactInfo: in.ContactInfo,
		Images:      in.Images,
		CreatedBy:   s.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ExpiresAt != nil {
		alert.ExpiresAt = *in.ExpiresAt
	}
	alert.ApplyDefaults(now)
	if err := alert.Location.Point.Validate(); err != nil {
		return nil, entity.NewValidationError("location", err.Error())
	}

	id, err := uc.alerts.Create(ctx, alert)
	if err != nil {
		uc.logger.Error("Failed to create alert", zap.Error(err), zap.String("userID", s.UserID))
		return nil, fmt.Errorf("AlertUseCase.Create: %w", err)
	}
	alert.ID = id
	if uc.metrics != nil {
		uc.metrics.AlertsCreatedTotal.Inc()
	}
	publish(ctx, uc.publisher, uc.logger, SubjectAlertCreated, AlertEvent{
		AlertID: id, CreatedBy: s.UserID, Type: alert.Type, Urgency: alert.Urgency,
		City: alert.Location.City, RadiusKm: alert.Location.RadiusKm, At: now,
	})
	return alert, nil
}

func (uc *AlertUseCase) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, entity.Pagination, error) {
	alerts, total, err := uc.alerts.List(ctx, f)
	if err != nil {
		return nil, entity.Pagination{}, fmt.Errorf("AlertUseCase.List: %w", err)
	}
	return alerts, entity.NewPagination(f.Page, total), nil
}

func (uc *AlertUseCase) Get(ctx context.Context, id string) (*entity.Alert, error) {
	alert, err := uc.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Alert")
	}
	return alert, nil
}

type UpdateAlertInput struct {
	Title          *string
	Description    *string
	Type           *entity.AlertType
	Urgency        *entity.Urgency
	Status         *entity.AlertStatus
	TargetAudience *entity.Audience
	RadiusKm       *float64
	PetDetails     *entity.PetDetails
	ContactInfo    *entity.ContactInfo
	Images         []string
	ExpiresAt      *time.Time
}

func (uc *AlertUseCase) Update(ctx context.Context, s *auth.Session, id string, in UpdateAlertInput) (*entity.Alert, error) {
	alert, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(s, auth.IsOwner(alert.CreatedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	var t entity.AlertType
	var u entity.Urgency
	var a entity.Audience
	var st entity.AlertStatus
	if in.Type != nil {
		t = *in.Type
	}
	if in.Urgency != nil {
		u = *in.Urgency
	}
	if in.TargetAudience != nil {
		a = *in.TargetAudience
	}
	if in.Status != nil {
		st = *in.Status
	}
	if err := validateAlertEnums(t, u, a, st); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, entity.NewValidationError("title", "Title cannot be empty")
		}
		alert.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, entity.NewValidationError("description", "Description cannot be empty")
		}
		alert.Description = strings.TrimSpace(*in.Description)
	}
	if t != "" {
		alert.Type = t
	}
	if u != "" {
		alert.Urgency = u
	}
	if a != "" {
		alert.TargetAudience = a
	}
	if st != "" {
		alert.Status = st
	}
	if in.RadiusKm != nil && *in.RadiusKm > 0 {
		alert.Location.RadiusKm = *in.RadiusKm
	}
	if in.PetDetails != nil {
		alert.PetDetails = in.PetDetails
	}
	if in.ContactInfo != nil {
		alert.ContactInfo = *in.ContactInfo
	}
	if in.Images != nil {
		alert.Images = in.Images
	}
	if in.ExpiresAt != nil {
		alert.ExpiresAt = *in.ExpiresAt
	}
	alert.UpdatedAt = uc.now().UTC()

	if err := uc.alerts.Update(ctx, alert); err != nil {
		return nil, repoErr(err, "Alert")
	}
	return alert, nil
}

func (uc *AlertUseCase) Delete(ctx context.Context, s *auth.Session, id string) error {
	alert, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(s, auth.IsOwner(alert.CreatedBy), auth.HasRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := uc.alerts.Delete(ctx, id); err != nil {
		return repoErr(err, "Alert")
	}
	uc.logger.Info("Alert deleted", zap.String("alertID", id), zap.String("by", s.UserID))
	return nil
}
