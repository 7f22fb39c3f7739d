package routers

import (
	"fmt"
	"tracybot-service/internal/app/delivery/http/controllers"
	"tracybot-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRouter(router chi.Router, ctrl *controllers.FulfillmentController) {
	// POST /webhook/fulfillment
	router.Post(fmt.Sprintf("/%s", constvars.ResourceFulfillment), ctrl.HandleFulfillment)
}
