package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/handlers"
	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/metrics"
	service "github.com/aaravmahajanofficial/swag-catalog/internal/services"
)

type Services struct {
	Catalog   service.CatalogService
	Cart      service.CartService
	Quotation service.QuotationService
}

// NewRouter mounts the API routes. Health and metrics endpoints are added by
// the caller so tests can run without them.
func NewRouter(svc Services) *http.ServeMux {
	productHandler := handlers.NewProductHandler(svc.Catalog)
	cartHandler := handlers.NewCartHandler(svc.Cart)
	quotationHandler := handlers.NewQuotationHandler(svc.Quotation)

	session := func(h http.HandlerFunc) http.Handler { return middleware.Session(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	mux.HandleFunc("GET /api/v1/products/{id}/price", productHandler.GetPrice())
	mux.HandleFunc("GET /api/v1/catalog/filters", productHandler.GetFilters())
	mux.Handle("GET /api/v1/cart", session(cartHandler.GetCart()))
	mux.Handle("GET /api/v1/cart/count", session(cartHandler.CountItems()))
	mux.Handle("POST /api/v1/cart/items", session(cartHandler.AddItem()))
	mux.Handle("DELETE /api/v1/cart", session(cartHandler.ClearCart()))
	mux.Handle("POST /api/v1/quotations/validate", session(quotationHandler.Validate()))
	mux.Handle("POST /api/v1/quotations", session(quotationHandler.Issue()))

	return mux
}

// Wrap applies the middleware shared by every route, outermost first.
func Wrap(h http.Handler) http.Handler {
	return middleware.Logging(metrics.Middleware(h))
}
