package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"
	"tracybot-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AgendaController struct {
	Log           *zap.Logger
	AgendaUsecase contracts.AgendaUsecase
}

func NewAgendaController(logger *zap.Logger, agendaUsecase contracts.AgendaUsecase) *AgendaController {
	return &AgendaController{
		Log:           logger,
		AgendaUsecase: agendaUsecase,
	}
}

// HandleExportDay answers GET /{prefix}/{version}/agenda/{date} with the
// day's events as an iCalendar file. A trailing ".ics" on the date is allowed.
func (ctrl *AgendaController) HandleExportDay(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSuffix(chi.URLParam(r, constvars.URLParamDate), ".ics")
	if date == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(errors.New("empty date"), constvars.URLParamDate))
		return
	}

	body, err := ctrl.AgendaUsecase.ExportDay(r.Context(), date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextCalendarCharsetUTF8)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fmt.Sprintf(constvars.AgendaFileName, date)))
	w.WriteHeader(constvars.StatusOK)
	_, _ = w.Write(body)
}
