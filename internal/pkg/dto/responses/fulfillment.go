package responses

// WebhookResponse is the Dialogflow ES fulfillment response body.
type WebhookResponse struct {
	FulfillmentText     string               `json:"fulfillmentText"`
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages,omitempty"`
}

type FulfillmentMessage struct {
	Text FulfillmentText `json:"text"`
}

type FulfillmentText struct {
	Text []string `json:"text"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
