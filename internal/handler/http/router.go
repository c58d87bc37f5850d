package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhishek8094/storefront/internal/auth"
	"github.com/abhishek8094/storefront/internal/domain"
	"github.com/abhishek8094/storefront/internal/service"
	"github.com/abhishek8094/storefront/pkg/health"
	"github.com/abhishek8094/storefront/pkg/middleware"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Account    *service.AccountService
	Catalog    *service.CatalogService
	Collection *service.CollectionService
	Cart       *service.CartService
	Order      *service.OrderService
	Contact    *service.ContactService
}

// RouterConfig holds transport-level settings for the HTTP router.
type RouterConfig struct {
	CORS          middleware.CORSConfig
	AuthRateRPS   int
	AuthRateBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	services Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(services.Account, logger)
	addressHandler := NewAddressHandler(services.Account, logger)
	catalogHandler := NewCatalogHandler(services.Catalog, logger)
	collectionHandler := NewCollectionHandler(services.Collection, logger)
	cartHandler := NewCartHandler(services.Cart, logger)
	orderHandler := NewOrderHandler(services.Order, logger)
	contactHandler := NewContactHandler(services.Contact, logger)

	authenticate := middleware.Auth(tokenValidator(jwtManager))
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst, logger))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.With(authenticate).Get("/me", authHandler.GetProfile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", catalogHandler.CreateProduct)
				r.Put("/{id}", catalogHandler.UpdateProduct)
				r.Delete("/{id}", catalogHandler.DeleteProduct)
			})
		})

		r.Route("/accessories", func(r chi.Router) {
			r.Get("/", catalogHandler.ListAccessories)
			r.Get("/{id}", catalogHandler.GetAccessory)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", catalogHandler.CreateAccessory)
				r.Put("/{id}", catalogHandler.UpdateAccessory)
				r.Delete("/{id}", catalogHandler.DeleteAccessory)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCategories)
			r.Get("/{idOrSlug}", catalogHandler.GetCategory)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", catalogHandler.CreateCategory)
				r.Put("/{idOrSlug}", catalogHandler.UpdateCategory)
				r.Delete("/{idOrSlug}", catalogHandler.DeleteCategory)
			})
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/{collection}", collectionHandler.Browse)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Post("/", collectionHandler.CreateCollection)
				r.Put("/{collection}", collectionHandler.UpdateCollection)
				r.Delete("/{collection}", collectionHandler.DeleteCollection)
				r.Delete("/{collection}/images/{imageID}", collectionHandler.DeleteImage)
			})
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", addressHandler.CreateAddress)
			r.Get("/", addressHandler.ListAddresses)
			r.Put("/{id}", addressHandler.UpdateAddress)
			r.Delete("/{id}", addressHandler.DeleteAddress)
			r.Put("/{id}/default", addressHandler.SetDefaultAddress)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{id}", orderHandler.GetOrder)
			r.With(adminOnly).Put("/{id}/status", orderHandler.UpdateOrderStatus)
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", contactHandler.Submit)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)
				r.Get("/", contactHandler.ListMessages)
				r.Delete("/{id}", contactHandler.DeleteMessage)
			})
		})
	})

	return r
}

// tokenValidator adapts the JWT manager to the auth middleware contract.
func tokenValidator(m *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := m.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
}
