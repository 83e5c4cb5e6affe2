package handlers

import (
	"bytes"
	"net/http"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/aaravmahajanofficial/swag-catalog/internal/quotation"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils/response"
)

type QuotationHandler struct {
	quotationService service.QuotationService
}

func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Validate reports per-field errors; an invalid form is still a 200.
func (h *QuotationHandler) Validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())

		var form models.QuotationForm
		if err := utils.DecodeJSONBody(r, &form); err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		result, err := h.quotationService.Validate(r.Context(), sessionID, &form)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *QuotationHandler) Issue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())

		var form models.QuotationForm
		if err := utils.DecodeJSONBody(r, &form); err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		q, err := h.quotationService.Issue(r.Context(), sessionID, &form)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		if r.URL.Query().Get("format") != "html" {
			response.Success(w, http.StatusCreated, q)
			return
		}

		var buf bytes.Buffer
		if err := quotation.Render(&buf, *q); err != nil {
			writeServiceError(w, r, appErrors.InternalError("Failed to render quotation").WithError(err))
			return
		}

		response.HTML(w, http.StatusCreated, buf.Bytes())
	}
}
