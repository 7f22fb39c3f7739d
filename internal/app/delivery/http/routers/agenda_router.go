package routers

import (
	"fmt"
	"tracybot-service/internal/app/delivery/http/controllers"
	"tracybot-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAgendaRouter(router chi.Router, ctrl *controllers.AgendaController) {
	// GET /agenda/{date}
	router.Get(fmt.Sprintf("/{%s}", constvars.URLParamDate), ctrl.HandleExportDay)
}
