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

// ListingHandler serves adoption and foster listings.
type ListingHandler struct {
	adoption *usecase.AdoptionUseCase
	foster   *usecase.FosterUseCase
	validate *Validator
	logger   *zap.Logger
}

func NewListingHandler(adoption *usecase.AdoptionUseCase, foster *usecase.FosterUseCase, v *Validator, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{adoption: adoption, foster: foster, validate: v, logger: logger}
}

type listingRequest struct {
	Pet           entity.PetDetails    `json:"pet"`
	Description   string               `json:"description" validate:"max=2000"`
	Images        []string             `json:"images" validate:"max=10,dive,url"`
	Location      *locationRequest     `json:"location"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	Requirements  []string             `json:"requirements"`
	Compatibility entity.Compatibility `json:"compatibility"`
	ContactInfo   entity.ContactInfo   `json:"contactInfo"`
}

func (req listingRequest) input() usecase.ListingInput {
	lat, lng, address := req.Location.split()
	return usecase.ListingInput{
		Pet:           req.Pet,
		Description:   req.Description,
		Images:        req.Images,
		Address:       address,
		City:          req.City,
		State:         req.State,
		Latitude:      lat,
		Longitude:     lng,
		Requirements:  req.Requirements,
		Compatibility: req.Compatibility,
		ContactInfo:   req.ContactInfo,
	}
}

type createAdoptionRequest struct {
	listingRequest
	AdoptionFee float64 `json:"adoptionFee" validate:"gte=0"`
	HealthNotes string  `json:"healthNotes" validate:"max=1000"`
}

type createFosterRequest struct {
	listingRequest
	Duration     entity.FosterDuration `json:"duration"`
	StartDate    *date                 `json:"startDate"`
	EndDate      *date                 `json:"endDate"`
	SpecialNeeds string                `json:"specialNeeds" validate:"max=1000"`
}

type applyRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

type adoptionStatusRequest struct {
	Status    entity.AdoptionStatus `json:"status" validate:"required,oneof=available pending adopted"`
	AdoptedBy string                `json:"adoptedBy"`
}

type assignRequest struct {
	UserID string `json:"userId" validate:"required"`
	Notes  string `json:"notes" validate:"max=1000"`
}

func (h *ListingHandler) ListAdoption(w http.ResponseWriter, r *http.Request) {
	maxFee, err := queryFloat(r, "maxFee")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	q := r.URL.Query()
	listings, page, err := h.adoption.List(r.Context(), repository.AdoptionFilter{
		PetType:      q.Get("petType"),
		City:         q.Get("city"),
		Status:       entity.AdoptionStatus(statusParam(r, string(entity.AdoptionAvailable))),
		Gender:       q.Get("gender"),
		Size:         q.Get("size"),
		GoodWithKids: queryBool(r, "goodWithKids"),
		GoodWithPets: queryBool(r, "goodWithPets"),
		MaxFee:       maxFee,
		Search:       q.Get("search"),
		PostedBy:     q.Get("postedBy"),
		Page:         pageRequest(r),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, listings, page)
}

func (h *ListingHandler) CreateAdoption(w http.ResponseWriter, r *http.Request) {
	var req createAdoptionRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.adoption.Create(r.Context(), auth.SessionFrom(r.Context()), usecase.CreateAdoptionInput{
		ListingInput: req.input(),
		AdoptionFee:  req.AdoptionFee,
		HealthNotes:  req.HealthNotes,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, listing, "Adoption listing created successfully")
}

func (h *ListingHandler) GetAdoption(w http.ResponseWriter, r *http.Request) {
	listing, err := h.adoption.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, listing)
}

func (h *ListingHandler) ApplyAdoption(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.adoption.Apply(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: listing, Message: "Application submitted successfully"})
}

func (h *ListingHandler) UpdateAdoptionStatus(w http.ResponseWriter, r *http.Request) {
	var req adoptionStatusRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.adoption.UpdateStatus(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Status, req.AdoptedBy)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, listing)
}

func (h *ListingHandler) DeleteAdoption(w http.ResponseWriter, r *http.Request) {
	if err := h.adoption.Delete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Adoption listing deleted successfully")
}

func (h *ListingHandler) ListFoster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, page, err := h.foster.List(r.Context(), repository.FosterFilter{
		PetType:  q.Get("petType"),
		City:     q.Get("city"),
		Status:   entity.FosterStatus(statusParam(r, string(entity.FosterAvailable))),
		Duration: entity.FosterDuration(q.Get("duration")),
		Search:   q.Get("search"),
		PostedBy: q.Get("postedBy"),
		Page:     pageRequest(r),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, listings, page)
}

func (h *ListingHandler) CreateFoster(w http.ResponseWriter, r *http.Request) {
	var req createFosterRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.foster.Create(r.Context(), auth.SessionFrom(r.Context()), usecase.CreateFosterInput{
		ListingInput: req.input(),
		Duration:     req.Duration,
		StartDate:    req.StartDate.ptr(),
		EndDate:      req.EndDate.ptr(),
		SpecialNeeds: req.SpecialNeeds,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, listing, "Foster listing created successfully")
}

func (h *ListingHandler) GetFoster(w http.ResponseWriter, r *http.Request) {
	listing, err := h.foster.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, listing)
}

func (h *ListingHandler) ApplyFoster(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.foster.Apply(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: listing, Message: "Application submitted successfully"})
}

func (h *ListingHandler) AssignFoster(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	listing, err := h.foster.Assign(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.UserID, req.Notes)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, listing)
}

func (h *ListingHandler) CompleteFoster(w http.ResponseWriter, r *http.Request) {
	listing, err := h.foster.Complete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, listing)
}

func (h *ListingHandler) DeleteFoster(w http.ResponseWriter, r *http.Request) {
	if err := h.foster.Delete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Foster listing deleted successfully")
}
