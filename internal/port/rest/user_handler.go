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

// UserHandler serves the administrator account endpoints.
type UserHandler struct {
	users    *usecase.UserUseCase
	validate *Validator
	logger   *zap.Logger
}

func NewUserHandler(uc *usecase.UserUseCase, v *Validator, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: uc, validate: v, logger: logger}
}

type createUserRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,password"`
	Role     entity.Role `json:"role" validate:"omitempty,oneof=user vet admin"`
	Phone    string      `json:"phone"`
}

type updateUserRequest struct {
	Name        *string             `json:"name" validate:"omitempty,max=100"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	Role        *entity.Role        `json:"role" validate:"omitempty,oneof=user vet admin"`
	Phone       *string             `json:"phone"`
	IsActive    *bool               `json:"isActive"`
	Permissions *entity.Permissions `json:"permissions"`
	Password    *string             `json:"password" validate:"omitempty,password"`
}

type blockRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type roleRequest struct {
	Role entity.Role `json:"role" validate:"required,oneof=user vet admin"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	f := repository.UserFilter{
		Role:    entity.Role(r.URL.Query().Get("role")),
		Blocked: queryBool(r, "blocked"),
		Search:  r.URL.Query().Get("search"),
		Page:    pageRequest(r),
	}
	switch r.URL.Query().Get("status") {
	case "active":
		active := true
		f.Active = &active
	case "inactive":
		active := false
		f.Active = &active
	}
	users, page, err := h.users.List(r.Context(), f)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, users, page)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.users.Create(r.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, user, "User created successfully")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.users.Update(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), usecase.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Phone:       req.Phone,
		IsActive:    req.IsActive,
		Permissions: req.Permissions,
		Password:    req.Password,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: user, Message: "User updated successfully"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "User deleted successfully")
}

func (h *UserHandler) Block(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.users.Block(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: user, Message: "User blocked successfully"})
}

func (h *UserHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Unblock(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: user, Message: "User unblocked successfully"})
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.users.ChangeRole(r.Context(), auth.SessionFrom(r.Context()), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, user)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, stats)
}
