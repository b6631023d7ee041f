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

// ModerationHandler serves content reports and site testimonials.
type ModerationHandler struct {
	reports      *usecase.ReportUseCase
	testimonials *usecase.TestimonialUseCase
	validate     *Validator
	logger       *zap.Logger
}

func NewModerationHandler(reports *usecase.ReportUseCase, testimonials *usecase.TestimonialUseCase, v *Validator, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{reports: reports, testimonials: testimonials, validate: v, logger: logger}
}

type createReportRequest struct {
	TargetType  entity.ReportTarget `json:"targetType"`
	TargetID    string              `json:"targetId"`
	Reason      string              `json:"reason" validate:"max=200"`
	Description string              `json:"description" validate:"max=2000"`
}

type reviewReportRequest struct {
	ReportID   string              `json:"reportId" validate:"required"`
	Status     entity.ReportStatus `json:"status" validate:"required"`
	AdminNotes string              `json:"adminNotes" validate:"max=2000"`
}

type testimonialRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type approvalRequest struct {
	IsApproved bool `json:"isApproved"`
}

func (h *ModerationHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	report, err := h.reports.Create(r.Context(), auth.SessionFrom(r.Context()), usecase.CreateReportInput{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, report, "Report submitted successfully")
}

func (h *ModerationHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, page, err := h.reports.List(r.Context(), repository.ReportFilter{
		Status: entity.ReportStatus(statusParam(r, "")),
		Page:   pageRequest(r),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, reports, page)
}

func (h *ModerationHandler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	var req reviewReportRequest
	if err := h.validate.bind(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	report, err := h.reports.Review(r.Context(), auth.SessionFrom(r.Context()), usecase.ReviewReportInput{
		ReportID:   req.ReportID,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: report, Message: "Report updated successfully"})
}

// MyTestimonial returns data:null when the caller has not written one.
func (h *ModerationHandler) MyTestimonial(w http.ResponseWriter, r *http.Request) {
	t, err := h.testimonials.Mine(r.Context(), auth.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, t)
}

func (h *ModerationHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	t, err := h.testimonials.Create(r.Context(), auth.SessionFrom(r.Context()), req.Content, req.Rating)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, t, "Thank you! Your review will appear once approved")
}

func (h *ModerationHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	t, err := h.testimonials.Update(r.Context(), auth.SessionFrom(r.Context()), req.Content, req.Rating)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: t, Message: "Review updated and sent for approval"})
}

func (h *ModerationHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), auth.SessionFrom(r.Context())); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Review deleted successfully")
}

func (h *ModerationHandler) PublicTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.testimonials.Public(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, list)
}

func (h *ModerationHandler) AdminTestimonials(w http.ResponseWriter, r *http.Request) {
	list, page, err := h.testimonials.AdminList(r.Context(), repository.TestimonialFilter{
		Approved: queryBool(r, "approved"),
		Page:     pageRequest(r),
	})
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Page(w, list, page)
}

func (h *ModerationHandler) SetTestimonialApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := decode(w, r, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	t, err := h.testimonials.SetApproval(r.Context(), chi.URLParam(r, "id"), req.IsApproved)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.OK(w, t)
}

func (h *ModerationHandler) AdminDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.AdminDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Message(w, "Review deleted successfully")
}
