package controllers

import (
	"net/http"
	"tracybot-service/internal/app/config"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/dto/responses"
	"tracybot-service/internal/pkg/utils"
)

type HealthController struct {
	InternalConfig *config.InternalConfig
}

func NewHealthController(internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{InternalConfig: internalConfig}
}

func (ctrl *HealthController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:  constvars.ResponseSuccess,
		Version: ctrl.InternalConfig.App.Version,
	})
}
