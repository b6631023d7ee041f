package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
	"github.com/ahsanauddry027/safetails-sub000/internal/usecase"
	"github.com/ahsanauddry027/safetails-sub000/internal/wizard"
)

// multipart overhead allowed on top of the image itself
const uploadSlack = 1 << 20

type MediaHandler struct {
	media  *usecase.MediaUseCase
	logger *zap.Logger
}

func NewMediaHandler(uc *usecase.MediaUseCase, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{media: uc, logger: logger}
}

// Upload stores the multipart "file" part and returns its public URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxImageSize+uploadSlack)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, r, h.logger, entity.NewError(entity.ErrValidation, "File size exceeds 5MB limit"))
			return
		}
		response.Error(w, r, h.logger, entity.NewValidationError("file", "No file uploaded"))
		return
	}
	defer file.Close()

	url, err := h.media.UploadImage(r.Context(), auth.SessionFrom(r.Context()), file, header.Size)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.Created(w, map[string]string{"url": url}, "File uploaded successfully")
}

// Forms serves the step definitions clients use to drive creation wizards.
func Forms(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	def, err := wizard.Lookup(kind)
	if err != nil {
		response.Fail(w, http.StatusNotFound, "Unknown form")
		return
	}
	response.OK(w, def)
}
