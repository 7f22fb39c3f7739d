package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	HealthCheckSuccessMessage = "service is healthy"
)
