package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/dto/requests"
	"tracybot-service/internal/pkg/exceptions"
	"tracybot-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FulfillmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	MessageUsecase     contracts.MessageUsecase
}

func NewFulfillmentController(
	logger *zap.Logger,
	appointmentUsecase contracts.AppointmentUsecase,
	messageUsecase contracts.MessageUsecase,
) *FulfillmentController {
	return &FulfillmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		MessageUsecase:     messageUsecase,
	}
}

// HandleFulfillment answers POST /{prefix}/{version}/webhook/fulfillment.
// Every request that decodes answers 200 with one text reply; only a body
// that cannot be read or decoded gets an error status. A missing Content-Type
// is accepted.
func (ctrl *FulfillmentController) HandleFulfillment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if contentType := r.Header.Get(constvars.HeaderContentType); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != constvars.MIMEApplicationJSON {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnsupportedMediaType(err))
			return
		}
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrRequestBodyTooLarge(err, tooLarge.Limit))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
		return
	}
	defer r.Body.Close()

	var request requests.WebhookRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	intent := request.QueryResult.Intent.DisplayName
	ctrl.Log.Info("FulfillmentController.HandleFulfillment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIntentKey, intent),
		zap.String(constvars.LoggingSessionKey, request.Session),
	)

	reply := ctrl.dispatch(ctx, intent, request.QueryResult.Parameters)
	utils.BuildFulfillmentResponse(w, reply)
}

func (ctrl *FulfillmentController) dispatch(ctx context.Context, intent string, params map[string]interface{}) (reply string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	// the agent always gets a reply, even when a usecase blows up
	defer func() {
		if rec := recover(); rec != nil {
			ctrl.Log.Error("FulfillmentController.dispatch recovered from panic",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingIntentKey, intent),
				zap.Error(fmt.Errorf("%v", rec)),
			)
			reply = constvars.ReplyProcessingFailed
		}
	}()

	switch intent {
	case constvars.IntentCreateAppointment, constvars.IntentCreateAppointmentAlias:
		input := utils.MapCreateAppointmentParameters(params)
		if err := utils.ValidateStruct(input); err != nil {
			ctrl.logMissingParameters(requestID, intent, err)
			return constvars.ReplyMissingParameters
		}
		outcome := ctrl.AppointmentUsecase.Book(ctx, &models.AppointmentRequest{
			RequesterName: input.Person,
			DateString:    input.Date,
			SlotNumber:    input.Number,
			PhoneNumber:   input.PhoneNumber,
		})
		return ctrl.replyFrom(requestID, intent, outcome)

	case constvars.IntentLeaveMessage, constvars.IntentLeaveMessageAlias:
		input := utils.MapLeaveMessageParameters(params)
		if err := utils.ValidateStruct(input); err != nil {
			ctrl.logMissingParameters(requestID, intent, err)
			return constvars.ReplyMissingParameters
		}
		outcome := ctrl.MessageUsecase.Relay(ctx, &models.MessageRequest{
			SenderName:  input.Person,
			SenderEmail: input.Email,
			Body:        input.Message,
		})
		return ctrl.replyFrom(requestID, intent, outcome)

	default:
		ctrl.Log.Warn("FulfillmentController.dispatch unsupported intent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIntentKey, intent),
		)
		return constvars.ReplyUnsupportedIntent
	}
}

func (ctrl *FulfillmentController) replyFrom(requestID, intent string, outcome *models.Outcome) string {
	if outcome == nil || outcome.Reply == "" {
		ctrl.Log.Error("FulfillmentController.replyFrom usecase returned no reply",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIntentKey, intent),
		)
		return constvars.ReplyProcessingFailed
	}

	ctrl.Log.Info("FulfillmentController.replyFrom outcome",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIntentKey, intent),
		zap.String(constvars.LoggingOutcomeStateKey, string(outcome.State)),
		zap.Bool(constvars.LoggingSuccessKey, outcome.IsSuccess()),
	)
	return outcome.Reply
}

func (ctrl *FulfillmentController) logMissingParameters(requestID, intent string, err error) {
	ctrl.Log.Info("FulfillmentController.dispatch missing or invalid parameters",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIntentKey, intent),
		zap.String(constvars.LoggingErrorTypeKey, exceptions.FormatFirstValidationError(err)),
	)
}
