package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "TRCY_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	ResourceFulfillment = "fulfillment"
	ResourceAgenda      = "agenda"
	ResourceHealth      = "healthz"
)

const (
	URLParamDate = "date"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	AgendaFileName = "agenda-%s.ics"
)
