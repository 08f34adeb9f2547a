package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shareloop/shareloop-backend/api/controllers"
	"github.com/shareloop/shareloop-backend/api/middleware"
	"github.com/shareloop/shareloop-backend/internal/bookings"
	"github.com/shareloop/shareloop-backend/internal/items"
	"github.com/shareloop/shareloop-backend/internal/requests"
	"github.com/shareloop/shareloop-backend/internal/users"
	"github.com/shareloop/shareloop-backend/pkg/config"
	"github.com/shareloop/shareloop-backend/pkg/db"
	"github.com/shareloop/shareloop-backend/pkg/logger"
	"github.com/shareloop/shareloop-backend/pkg/metrics"
	pkgredis "github.com/shareloop/shareloop-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *pkgredis.Client
	Registry *prometheus.Registry

	Users    users.Service
	Items    items.Service
	Bookings bookings.Service
	Requests requests.Service
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	cfg := p.Config
	logg := p.Logger

	registry := p.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var redisP pkgredis.Pinger
	if p.Redis != nil {
		redisP = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// User administration carries no sharer header.
	r.Route("/users", func(r chi.Router) {
		r.Post("/", controllers.UserCreate(p.Users, logg))
		r.Get("/", controllers.UserList(p.Users, logg))
		r.Get("/{userId}", controllers.UserGet(p.Users, logg))
		r.Patch("/{userId}", controllers.UserUpdate(p.Users, logg))
		r.Delete("/{userId}", controllers.UserDelete(p.Users, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(logg))

		var store pkgredis.IdempotencyStore
		if p.Redis != nil {
			store = p.Redis
		}
		r.Use(middleware.Idempotency(store, logg))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemCreate(p.Items, logg))
			r.Get("/", controllers.ItemList(p.Items, logg))
			r.Get("/search", controllers.ItemSearch(p.Items, logg))
			r.Get("/{itemId}", controllers.ItemGet(p.Items, logg))
			r.Patch("/{itemId}", controllers.ItemUpdate(p.Items, logg))
			r.Delete("/{itemId}", controllers.ItemDelete(p.Items, logg))
			r.Post("/{itemId}/comment", controllers.ItemComment(p.Items, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", controllers.BookingCreate(p.Bookings, logg))
			r.Get("/", controllers.BookingListForBooker(p.Bookings, logg))
			r.Get("/owner", controllers.BookingListForOwner(p.Bookings, logg))
			r.Get("/{bookingId}", controllers.BookingGet(p.Bookings, logg))
			r.Patch("/{bookingId}", controllers.BookingResolve(p.Bookings, logg))
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", controllers.RequestCreate(p.Requests, logg))
			r.Get("/", controllers.RequestListOwn(p.Requests, logg))
			r.Get("/all", controllers.RequestListOthers(p.Requests, logg))
			r.Get("/{requestId}", controllers.RequestGet(p.Requests, logg))
		})
	})

	return r
}
