// Package academy предоставляет маршруты для основного приложения.
package academy

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/bundle"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/faqs"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/features"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/hero"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/packages"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/content/testimonials"
	"github.com/magabrotheeeer/crypto-academy/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/crypto-academy/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/crypto-academy/internal/services/auth"
	contentservice "github.com/magabrotheeeer/crypto-academy/internal/services/content"
	entitlementservice "github.com/magabrotheeeer/crypto-academy/internal/services/entitlement"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authSvc *authservice.Service,
	contentSvc *contentservice.Service,
	entitlementSvc *entitlementservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	packagesHandler := packages.New(logger, contentSvc)
	featuresHandler := features.New(logger, contentSvc)
	testimonialsHandler := testimonials.New(logger, contentSvc)
	faqsHandler := faqs.New(logger, contentSvc)
	heroHandler := hero.New(logger, contentSvc)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/content", bundle.New(logger, contentSvc).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger)).
			Post("/login", login.New(logger, authSvc).ServeHTTP)

		// Вебхук платёжного провайдера (без аутентификации, доверие по
		// сетевой конвенции; подтверждается всегда)
		r.Post("/nowpayments-webhook", paymentwebhook.New(logger, entitlementSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authSvc, logger))

			r.Put("/user/change-password", changepassword.New(logger, authSvc).ServeHTTP)

			r.Get("/packages", packagesHandler.List)
			r.Post("/packages", packagesHandler.Create)
			r.Put("/packages/{id}", packagesHandler.Update)
			r.Delete("/packages/{id}", packagesHandler.Delete)

			r.Get("/features", featuresHandler.List)
			r.Post("/features", featuresHandler.Create)
			r.Put("/features/{id}", featuresHandler.Update)
			r.Delete("/features/{id}", featuresHandler.Delete)

			r.Get("/testimonials", testimonialsHandler.List)
			r.Post("/testimonials", testimonialsHandler.Create)
			r.Put("/testimonials/{id}", testimonialsHandler.Update)
			r.Delete("/testimonials/{id}", testimonialsHandler.Delete)

			r.Get("/faqs", faqsHandler.List)
			r.Post("/faqs", faqsHandler.Create)
			r.Put("/faqs/{id}", faqsHandler.Update)
			r.Delete("/faqs/{id}", faqsHandler.Delete)

			r.Get("/hero", heroHandler.Get)
			r.Put("/hero", heroHandler.Update)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
