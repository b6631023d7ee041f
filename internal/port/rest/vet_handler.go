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

type VetHandler struct {
	vets     *usecase.VetDirectoryUseCase
	validate *Validator
	logger   *zap.Logger
}

func NewVetHandler(uc *usecase.VetDirectoryUseCase, v *Validator, logger *zap.Logger) *VetHandler {
	return &VetHandler{vets: uc, validate: v, logger: logger}
}

type vetEntryRequest struct {
	ClinicName           string                     `json:"clinicName" validate:"required,max=200"`
	Description          string                     `json:"description" validate:"max=2000"`
	Specializations      []string                   `json:"specializations"`
	Services             []string                   `json:"services"`
	Location             *locationRequest           `json:"location"`
	City                 string                     `json:"city" validate:"required"`
	State                string                     `json:"state" validate:"required"`
	ZipCode              string                     `json:"zipCode"`
	Contact              entity.VetContact          `json:"contact"`
	OperatingHours       map[string]entity.DayHours `json:"operatingHours"`
	IsEmergencyAvailable bool                       `json:"isEmergencyAvailable"`
	Is24Hours            bool                       `json:"is24Hours"`
}

func (req vetEntryRequest) input() usecase.VetEntryInput {
	lat, lng, address := req.Location.split()
	return usecase.VetEntryInput{
		ClinicName:           req.ClinicName,
		Description:          req.Description,
		Specializations:      req.Specializations,
		Services:             req.Services,
		Address:              address,
		City:                 req.City,
		State:                req.State,
		ZipCode:              req.ZipCode,
		Latitude:             lat,
		Longitude:            lng,
		Contact:              req.Contact,
		OperatingHours:       req.OperatingHours,
		IsEmergencyAvailable: req.IsEmergencyAvailable,
		Is24Hours:            req.Is24Hours,
	}
}

type rateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type verifyRequest struct {
	IsVerified bool `json:"isVerified"`
}

func (h *VetHandler) List(w http.ResponseWriter, r *http.Request) {
	near, err := geoFilter(r, "maxDistance")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	q := r.URL.Query()
	f := repository.VetFilter{
		Specialization: q.Get("specialization"),
		Service:        q.Get("service"),
		City:           q.Get("city"),
		State:          q.Get("state"),
		Verified:       queryBool(r, "verified"),
		Search:         q.Get("search"),
		Near:           near,
		Page:           pageRequest(r),
	}
	if b := queryBool(r, "emergency"); b != nil {
		f.Emergency = *b
	}
	if b := queryBool(r, "is24Hours"); b != nil {
		f.Is24Hours = *b
	}
	entries, page, err := h.vets.List(r.Context(), f)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, entries, page)
}

func (h *VetHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.vets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, entry)
}

func (h *VetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vetEntryRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	entry, err := h.vets.Create(r.Context(), auth.SessionFrom(r.Context()), req.input())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, entry, "Directory entry created successfully")
}

func (h *VetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req vetEntryRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	entry, err := h.vets.Update(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.input())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, entry)
}

func (h *VetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vets.Delete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Directory entry deleted successfully")
}

func (h *VetHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	entry, err := h.vets.Rate(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Score)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, entry)
}

func (h *VetHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if err := h.vets.Verify(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.IsVerified); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	msg := "Clinic verified"
	if !req.IsVerified {
		msg = "Clinic verification removed"
	}
	response.Message(w, msg)
}
