package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/auth"
	"github.com/damda-platform/damda-admin/internal/config"
	"github.com/damda-platform/damda-admin/internal/content"
	"github.com/damda-platform/damda-admin/internal/daycares"
	"github.com/damda-platform/damda-admin/internal/middleware"
	"github.com/damda-platform/damda-admin/internal/payments"
	"github.com/damda-platform/damda-admin/internal/products"
	"github.com/damda-platform/damda-admin/internal/reservations"
	"github.com/damda-platform/damda-admin/internal/reviews"
	"github.com/damda-platform/damda-admin/internal/vendors"
)

// Handlers collects everything the router mounts. main wires it up.
type Handlers struct {
	Auth         *auth.Handler
	AuthService  *auth.Service
	Audit        *audit.Handler
	Vendors      *vendors.Handler
	Daycares     *daycares.Handler
	Products     *products.Handler
	Reservations *reservations.Handler
	Payments     *payments.Handler
	Reviews      *reviews.Handler
	Content      *content.Handler
	LoginLimiter *middleware.RateLimiter
	Health       http.HandlerFunc
	Ready        http.HandlerFunc
}

// NewRouter builds the chi router: global middleware, public health and auth
// endpoints, and the JWT-protected /api/v1 surface.
func NewRouter(cfg *config.Config, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(middleware.CORS(cfg.CORS.AllowedOrigins)))

	r.Get("/health/live", h.Health)
	r.Get("/health/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.LoginLimiter != nil {
				r.Use(h.LoginLimiter.Middleware)
			}
			r.Post("/auth/login", h.Auth.Login)
		})
		r.Post("/auth/refresh", h.Auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.AuthService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Get("/audit-logs", h.Audit.List)

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", h.Vendors.List)
				r.Post("/", h.Vendors.Create)
				r.Post("/bulk", h.Vendors.BulkCreate)
				r.Patch("/bulk/status", h.Vendors.BulkChangeStatus)
				r.Get("/{vendorID}", h.Vendors.Get)
				r.Put("/{vendorID}", h.Vendors.Update)
				r.Patch("/{vendorID}/status", h.Vendors.ChangeStatus)
				r.Delete("/{vendorID}", h.Vendors.Delete)
			})

			r.Route("/daycares", func(r chi.Router) {
				r.Get("/", h.Daycares.List)
				r.Post("/", h.Daycares.Create)
				r.Get("/{daycareID}", h.Daycares.Get)
				r.Put("/{daycareID}", h.Daycares.Update)
				r.Patch("/{daycareID}/status", h.Daycares.ChangeStatus)
				r.Delete("/{daycareID}", h.Daycares.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Products.List)
				r.Post("/", h.Products.Create)
				r.Patch("/bulk/status", h.Products.BulkChangeStatus)
				r.Post("/bulk/delete", h.Products.BulkDelete)
				r.Get("/{productID}", h.Products.Get)
				r.Put("/{productID}", h.Products.Update)
				r.Patch("/{productID}/status", h.Products.ChangeStatus)
				r.Patch("/{productID}/visibility", h.Products.SetVisibility)
				r.Delete("/{productID}", h.Products.Delete)
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", h.Reservations.List)
				r.Patch("/bulk/status", h.Reservations.BulkChangeStatus)
				r.Get("/{reservationID}", h.Reservations.Get)
				r.Patch("/{reservationID}/status", h.Reservations.ChangeStatus)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.Payments.List)
				r.Get("/refunds", h.Payments.ListRefunds)
				r.Get("/{paymentID}", h.Payments.Get)
				r.Post("/{paymentID}/refund", h.Payments.Refund)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", h.Reviews.List)
				r.Get("/{reviewID}", h.Reviews.Get)
				r.Patch("/{reviewID}/visibility", h.Reviews.SetHidden)
				r.Delete("/{reviewID}", h.Reviews.Delete)
			})

			r.Route("/notices", func(r chi.Router) {
				r.Get("/", h.Content.ListNotices)
				r.Post("/", h.Content.CreateNotice)
				r.Get("/{noticeID}", h.Content.GetNotice)
				r.Put("/{noticeID}", h.Content.UpdateNotice)
				r.Delete("/{noticeID}", h.Content.DeleteNotice)
			})

			r.Route("/faqs", func(r chi.Router) {
				r.Get("/", h.Content.ListFAQs)
				r.Post("/", h.Content.CreateFAQ)
				r.Get("/{faqID}", h.Content.GetFAQ)
				r.Put("/{faqID}", h.Content.UpdateFAQ)
				r.Delete("/{faqID}", h.Content.DeleteFAQ)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", h.Content.ListBanners)
				r.Post("/", h.Content.CreateBanner)
				r.Get("/{bannerID}", h.Content.GetBanner)
				r.Put("/{bannerID}", h.Content.UpdateBanner)
				r.Patch("/{bannerID}/visibility", h.Content.SetBannerVisibility)
				r.Delete("/{bannerID}", h.Content.DeleteBanner)
			})

			r.Route("/popups", func(r chi.Router) {
				r.Get("/", h.Content.ListPopups)
				r.Post("/", h.Content.CreatePopup)
				r.Get("/{popupID}", h.Content.GetPopup)
				r.Put("/{popupID}", h.Content.UpdatePopup)
				r.Patch("/{popupID}/visibility", h.Content.SetPopupVisibility)
				r.Delete("/{popupID}", h.Content.DeletePopup)
			})

			r.Route("/legal-documents", func(r chi.Router) {
				r.Get("/", h.Content.ListLegal)
				r.Post("/", h.Content.CreateLegal)
				r.Get("/{documentID}", h.Content.GetLegal)
				r.Put("/{documentID}", h.Content.UpdateLegal)
				r.Post("/{documentID}/publish", h.Content.PublishLegal)
				r.Delete("/{documentID}", h.Content.DeleteLegal)
			})

			r.Route("/inquiries", func(r chi.Router) {
				r.Get("/", h.Content.ListInquiries)
				r.Get("/{inquiryID}", h.Content.GetInquiry)
				r.Post("/{inquiryID}/answer", h.Content.AnswerInquiry)
				r.Delete("/{inquiryID}", h.Content.DeleteInquiry)
			})
		})
	})

	return r
}
