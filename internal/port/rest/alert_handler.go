package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/repository"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
	"github.com/ahsanauddry027/safetails-sub000/internal/usecase"
)

var errAlertIDRequired = entity.NewValidationError("id", "Alert ID is required")

type AlertHandler struct {
	alerts   *usecase.AlertUseCase
	validate *Validator
	logger   *zap.Logger
}

func NewAlertHandler(uc *usecase.AlertUseCase, v *Validator, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{alerts: uc, validate: v, logger: logger}
}

type alertLocationRequest struct {
	Coordinates []float64 `json:"coordinates" validate:"omitempty,coordinates"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Radius      float64   `json:"radius" validate:"gte=0"`
}

type createAlertRequest struct {
	Type           entity.AlertType     `json:"type"`
	Title          string               `json:"title" validate:"max=200"`
	Description    string               `json:"description" validate:"max=2000"`
	Urgency        entity.Urgency       `json:"urgency"`
	TargetAudience entity.Audience      `json:"targetAudience"`
	Location       alertLocationRequest `json:"location"`
	PetDetails     *entity.PetDetails   `json:"petDetails"`
	ContactInfo    entity.ContactInfo   `json:"contactInfo"`
	Images         []string             `json:"images" validate:"max=10,dive,url"`
	ExpiresAt      *date                `json:"expiresAt"`
}

type updateAlertRequest struct {
	Title          *string             `json:"title" validate:"omitempty,max=200"`
	Description    *string             `json:"description" validate:"omitempty,max=2000"`
	Type           *entity.AlertType   `json:"type"`
	Urgency        *entity.Urgency     `json:"urgency"`
	Status         *entity.AlertStatus `json:"status"`
	TargetAudience *entity.Audience    `json:"targetAudience"`
	Radius         *float64            `json:"radius" validate:"omitempty,gt=0"`
	PetDetails     *entity.PetDetails  `json:"petDetails"`
	ContactInfo    *entity.ContactInfo `json:"contactInfo"`
	Images         []string            `json:"images" validate:"omitempty,max=10,dive,url"`
	ExpiresAt      *date               `json:"expiresAt"`
}

// List keeps alerts whose own radius does not exceed ?radius. With lat and
// lng as well it also restricts to alerts within that distance.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	near, err := geoFilter(r, "radius")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	radius, err := queryFloat(r, "radius")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	q := r.URL.Query()
	f := repository.AlertFilter{
		Search:  q.Get("search"),
		Type:    entity.AlertType(q.Get("type")),
		Urgency: entity.Urgency(q.Get("urgency")),
		Status:  entity.AlertStatus(statusParam(r, string(entity.AlertStatusActive))),
		City:    q.Get("city"),
		Near:    near,
		Page:    pageRequest(r),
	}
	if radius != nil {
		f.MaxRadiusKm = *radius
	}
	alerts, page, err := h.alerts.List(r.Context(), f)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, alerts, page)
}

func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	lat, lng := latLng(req.Location.Coordinates)
	alert, err := h.alerts.Create(r.Context(), auth.SessionFrom(r.Context()), usecase.CreateAlertInput{
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		Urgency:        req.Urgency,
		TargetAudience: req.TargetAudience,
		Address:        req.Location.Address,
		City:           req.Location.City,
		State:          req.Location.State,
		Latitude:       lat,
		Longitude:      lng,
		RadiusKm:       req.Location.Radius,
		PetDetails:     req.PetDetails,
		ContactInfo:    req.ContactInfo,
		Images:         req.Images,
		ExpiresAt:      req.ExpiresAt.ptr(),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, alert, "Alert created successfully")
}

func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	alert, err := h.alerts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, alert)
}

// Update takes the alert id from the query string.
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		response.Error(w, r, h.logger, errAlertIDRequired)
		return
	}
	var req updateAlertRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	alert, err := h.alerts.Update(r.Context(), auth.SessionFrom(r.Context()), id, usecase.UpdateAlertInput{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Urgency:        req.Urgency,
		Status:         req.Status,
		TargetAudience: req.TargetAudience,
		RadiusKm:       req.Radius,
		PetDetails:     req.PetDetails,
		ContactInfo:    req.ContactInfo,
		Images:         req.Images,
		ExpiresAt:      req.ExpiresAt.ptr(),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: alert, Message: "Alert updated successfully"})
}

func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		response.Error(w, r, h.logger, errAlertIDRequired)
		return
	}
	if err := h.alerts.Delete(r.Context(), auth.SessionFrom(r.Context()), id); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Alert deleted successfully")
}
