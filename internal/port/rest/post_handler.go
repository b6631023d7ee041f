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

type PostHandler struct {
	posts    *usecase.PetPostUseCase
	validate *Validator
	logger   *zap.Logger
}

func NewPostHandler(uc *usecase.PetPostUseCase, v *Validator, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: uc, validate: v, logger: logger}
}

type createPostRequest struct {
	PostType          entity.PostType  `json:"postType" validate:"required,oneof=missing emergency wounded"`
	PetName           string           `json:"petName" validate:"max=100"`
	PetType           string           `json:"petType"`
	PetBreed          string           `json:"petBreed"`
	PetColor          string           `json:"petColor"`
	PetAge            string           `json:"petAge"`
	PetGender         string           `json:"petGender"`
	PetSize           string           `json:"petSize"`
	Description       string           `json:"description" validate:"max=2000"`
	Images            []string         `json:"images" validate:"max=10,dive,url"`
	Location          *locationRequest `json:"location"`
	City              string           `json:"city"`
	State             string           `json:"state"`
	ContactPhone      string           `json:"contactPhone"`
	LastSeenDate      *date            `json:"lastSeenDate"`
	InjuryDescription string           `json:"injuryDescription"`
}

type postActionRequest struct {
	Action  entity.PostAction `json:"action" validate:"required"`
	Content string            `json:"content"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	near, err := geoFilter(r, "maxDistance")
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	q := r.URL.Query()
	posts, page, err := h.posts.List(r.Context(), repository.PetPostFilter{
		PostType: entity.PostType(q.Get("postType")),
		Status:   entity.PostStatus(statusParam(r, string(entity.PostStatusActive))),
		PetType:  q.Get("petType"),
		City:     q.Get("city"),
		UserID:   q.Get("userId"),
		Search:   q.Get("search"),
		Near:     near,
		Page:     pageRequest(r),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, posts, page)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	lat, lng, address := req.Location.split()
	post, err := h.posts.Create(r.Context(), auth.SessionFrom(r.Context()), usecase.CreatePetPostInput{
		PostType: req.PostType,
		Pet: entity.PetDetails{
			Name:   req.PetName,
			Type:   req.PetType,
			Breed:  req.PetBreed,
			Color:  req.PetColor,
			Age:    req.PetAge,
			Gender: req.PetGender,
			Size:   req.PetSize,
		},
		Description:       req.Description,
		Images:            req.Images,
		Address:           address,
		City:              req.City,
		State:             req.State,
		Latitude:          lat,
		Longitude:         lng,
		ContactPhone:      req.ContactPhone,
		LastSeenDate:      req.LastSeenDate.ptr(),
		InjuryDescription: req.InjuryDescription,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, post, "Post created successfully")
}

// Get counts a view on every call.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, post)
}

func (h *PostHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req postActionRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	post, err := h.posts.Apply(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Action, req.Content)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Post deleted successfully")
}
