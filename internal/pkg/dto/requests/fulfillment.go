package requests

// WebhookRequest is the Dialogflow ES fulfillment request body. Only the
// fields the handlers read are mapped.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult" validate:"required"`
}

type QueryResult struct {
	QueryText    string                 `json:"queryText"`
	LanguageCode string                 `json:"languageCode"`
	Parameters   map[string]interface{} `json:"parameters"`
	Intent       Intent                 `json:"intent" validate:"required"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName" validate:"required"`
}

type CreateAppointment struct {
	Person      string `json:"person" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Number      int    `json:"number"`
	PhoneNumber string `json:"phone-number" validate:"required"`
}

type LeaveMessage struct {
	Person  string `json:"person" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
