package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils"
	"github.com/aaravmahajanofficial/swag-catalog/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())

		c, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, c)
	}
}

func (h *CartHandler) CountItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())

		count, err := h.cartService.CountItems(r.Context(), sessionID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, count)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		c, err := h.cartService.AddItem(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Int64("product_id", req.ProductID), slog.String("error", err.Error()))
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, c)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.MustSession(r.Context())

		c, err := h.cartService.ClearCart(r.Context(), sessionID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, c)
	}
}
