package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingErrorTypeKey       = "error_type"
	LoggingIntentKey          = "intent"
	LoggingSessionKey         = "session"
	LoggingCalendarIDKey      = "calendar_id"
	LoggingEventIDKey         = "event_id"
	LoggingEventCountKey      = "event_count"
	LoggingSlotNumberKey      = "slot_number"
	LoggingHour24Key          = "hour24"
	LoggingTimePeriodKey      = "time_period"
	LoggingDateKey            = "date"
	LoggingSlotStartKey       = "slot_start"
	LoggingSlotEndKey         = "slot_end"
	LoggingOutcomeStateKey    = "outcome_state"
	LoggingRejectReasonKey    = "reject_reason"
	LoggingFailedStepKey      = "failed_step"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingLockExpirationKey  = "lock_expiration"
	LoggingLockStoredValueKey = "lock_stored_value"
	LoggingLockWaitKey        = "lock_wait"
	LoggingAnalyticsIDKey     = "analytics_record_id"
	LoggingAnalyticsSinkKey   = "analytics_sink"
	LoggingQueueNameKey       = "queue_name"
	LoggingBucketNameKey      = "bucket_name"
	LoggingObjectNameKey      = "object_name"
	LoggingCollectionKey      = "collection"
)
