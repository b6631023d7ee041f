package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
	"github.com/ahsanauddry027/safetails-sub000/internal/usecase"
)

type AuthHandler struct {
	auth     *usecase.AuthUseCase
	cookies  auth.CookieIssuer
	validate *Validator
	logger   *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUseCase, cookies auth.CookieIssuer, v *Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: uc, cookies: cookies, validate: v, logger: logger}
}

type registerRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,password"`
	Role     entity.Role     `json:"role" validate:"omitempty,oneof=user vet"`
	Phone    string          `json:"phone"`
	VetInfo  *entity.VetInfo `json:"vetInfo"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	ProfileImage    *string `json:"profileImage"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" validate:"omitempty,password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.auth.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		VetInfo:  req.VetInfo,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, user, "Registration successful. Please verify your email")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	h.cookies.Set(w, res.Token)
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Data:    map[string]any{"user": res.User, "token": res.Token},
		Message: "Login successful",
	})
}

// Logout only clears the cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.Clear(w)
	response.Message(w, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), auth.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	user, err := h.auth.UpdateProfile(r.Context(), auth.SessionFrom(r.Context()), usecase.ProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		Bio:             req.Bio,
		ProfileImage:    req.ProfileImage,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: user, Message: "Profile updated successfully"})
}

// ForgotPassword answers the same way whether or not the address is known.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "If that email is registered, a reset link has been sent")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Password has been reset")
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Email verified successfully")
}
