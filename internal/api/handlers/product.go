package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/swag-catalog/internal/errors"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := parseCriteria(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		list, err := h.catalogService.ListProducts(r.Context(), criteria)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseProductID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) GetPrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseProductID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		quantity := 1
		if raw := r.URL.Query().Get("quantity"); raw != "" {
			quantity, err = strconv.Atoi(raw)
			if err != nil {
				response.Error(w, appErrors.AddValidationError("quantity", "must be an integer"))
				return
			}
		}

		quote, err := h.catalogService.QuotePrice(r.Context(), id, quantity)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *ProductHandler) GetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := h.catalogService.GetFilters(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, filters)
	}
}

func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError("Invalid product id")
	}

	return id, nil
}

func parseCriteria(r *http.Request) (models.FilterCriteria, error) {
	q := r.URL.Query()

	criteria := models.FilterCriteria{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		SortBy:   models.SortKey(q.Get("sort")),
		Supplier: q.Get("supplier"),
	}

	if criteria.Category == "" {
		criteria.Category = models.CategoryAll
	}

	var err error
	if criteria.MinPrice, err = parsePrice(q.Get("min_price"), "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = parsePrice(q.Get("max_price"), "max_price"); err != nil {
		return criteria, err
	}

	return criteria, nil
}

func parsePrice(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, appErrors.AddValidationError(field, "must be a non-negative number")
	}

	return &v, nil
}

// writeServiceError skips the response once the client has gone away.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.LoggerFromContext(r.Context())

	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		logger.Info("Request cancelled by client")
		return
	}

	if _, ok := appErrors.IsAppError(err); !ok {
		logger.Error("Unexpected service error", slog.String("error", err.Error()))
	}

	response.Error(w, err)
}
