package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"datetime": "must follow the %s layout",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientUnsupportedMediaType          = "content type must be application/json"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevReadRequestBody          = "cannot read request body"
	ErrDevRequestBodyTooLarge      = "request body exceeds %d bytes"
	ErrDevUnsupportedMediaType     = "unsupported media type"
	ErrDevTooManyRequests          = "rate limit exceeded for %s"
	ErrDevPanicRecovered           = "recovered from panic while serving request"

	ErrDevRedisGetNoData       = "no data found in redis for key %s"
	ErrDevRedisSetData         = "failed to set data to redis"
	ErrDevRedisDeleteData      = "failed to delete data from redis"
	ErrDevRedisExpire          = "failed to set expiration on redis key"
	ErrDevRedisLockNotOwned    = "redis lock is not owned by this client"
	ErrDevRedisLockWaitTimeout = "timed out waiting for redis lock %s"

	ErrDevCalendarListEvents         = "failed to list events of calendar %s"
	ErrDevCalendarInsertEvent        = "failed to insert event into calendar %s"
	ErrDevCalendarPatchEvent         = "failed to patch event %s of calendar %s"
	ErrDevCalendarPreconditionFailed = "event %s changed since it was read (etag mismatch)"
	ErrDevCalendarInvalidEventTime   = "invalid %s time on event %s"

	ErrDevMongoDBInsertDocument  = "failed to insert document into collection %s"
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevRabbitMQNotConfirmed   = "message to queue %s was not confirmed by broker"
	ErrDevMinioCreateObject      = "failed to create object in bucket %s"
	ErrDevAnalyticsSinkDisabled  = "analytics sink %s is not supported"
)
