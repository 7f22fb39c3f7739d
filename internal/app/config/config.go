package config

import (
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		GoogleCalendar: GoogleCalendar{
			CredentialsFile: utils.GetEnvString("GOOGLE_CALENDAR_CREDENTIALS_FILE", "service-account.json"),
			Endpoint:        utils.GetEnvString("GOOGLE_CALENDAR_ENDPOINT", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", constvars.DefaultTimezone),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		Calendar: Calendar{
			CalendarID:        utils.GetEnvString("CALENDAR_ID", "primary"),
			InboxLabel:        utils.GetEnvString("CALENDAR_INBOX_LABEL", constvars.DefaultInboxLabel),
			RequestsPerSecond: utils.GetEnvInt("CALENDAR_REQUESTS_PER_SECOND", 5),
		},
		Scheduling: Scheduling{
			AppointmentDurationInMinutes: utils.GetEnvInt("SCHEDULING_APPOINTMENT_DURATION_IN_MINUTES", 60),
			ExternalCallTimeoutInSeconds: utils.GetEnvInt("SCHEDULING_EXTERNAL_CALL_TIMEOUT_IN_SECONDS", 8),
			LockTTLInSeconds:             utils.GetEnvInt("SCHEDULING_LOCK_TTL_IN_SECONDS", 30),
			LockWaitTimeoutInSeconds:     utils.GetEnvInt("SCHEDULING_LOCK_WAIT_TIMEOUT_IN_SECONDS", 5),
		},
		Analytics: Analytics{
			Sinks:                 utils.GetEnvCSV("ANALYTICS_SINKS", "mongo"),
			MongoDBName:           utils.GetEnvString("ANALYTICS_MONGODB_DB_NAME", "dialogflow_dataset"),
			MongoCollection:       utils.GetEnvString("ANALYTICS_MONGODB_COLLECTION", "intent_logs"),
			RabbitMQQueue:         utils.GetEnvString("ANALYTICS_RABBITMQ_QUEUE", "intent_logs"),
			MinioBucket:           utils.GetEnvString("ANALYTICS_MINIO_BUCKET", "intent-logs"),
			MinioObjectPrefix:     utils.GetEnvString("ANALYTICS_MINIO_OBJECT_PREFIX", "intent_logs"),
			WriteTimeoutInSeconds: utils.GetEnvInt("ANALYTICS_WRITE_TIMEOUT_IN_SECONDS", 10),
		},
	}
}
