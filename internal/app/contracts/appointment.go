package contracts

import (
	"context"
	"tracybot-service/internal/app/models"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, request *models.AppointmentRequest) *models.Outcome
}

type MessageUsecase interface {
	Relay(ctx context.Context, request *models.MessageRequest) *models.Outcome
}

type AgendaUsecase interface {
	ExportDay(ctx context.Context, dateString string) ([]byte, error)
}
