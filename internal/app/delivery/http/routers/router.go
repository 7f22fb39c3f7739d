package routers

import (
	"fmt"
	"tracybot-service/internal/app/config"
	"tracybot-service/internal/app/delivery/http/controllers"
	"tracybot-service/internal/app/delivery/http/middlewares"
	"tracybot-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	fulfillmentController *controllers.FulfillmentController,
	agendaController *controllers.AgendaController,
	healthController *controllers.HealthController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)

	router.Get(fmt.Sprintf("/%s", constvars.ResourceHealth), healthController.HandleHealth)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/webhook", func(r chi.Router) {
				attachWebhookRouter(r, fulfillmentController)
			})

			r.Route(fmt.Sprintf("/%s", constvars.ResourceAgenda), func(r chi.Router) {
				attachAgendaRouter(r, agendaController)
			})
		})
	})
}
