package config

type (
	DriverConfig struct {
		Redis          Redis
		MongoDB        MongoDB
		RabbitMQ       RabbitMQ
		Minio          Minio
		Logger         Logger
		GoogleCalendar GoogleCalendar
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	GoogleCalendar struct {
		// CredentialsFile is the service account key used for the calendar API.
		CredentialsFile string
		// Endpoint overrides the API base URL (emulators, tests).
		Endpoint string
	}
)

type (
	InternalConfig struct {
		App        App
		Calendar   Calendar
		Scheduling Scheduling
		Analytics  Analytics
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		RequestBodyLimitInMegabyte int
	}

	Calendar struct {
		CalendarID        string
		InboxLabel        string
		RequestsPerSecond int
	}

	Scheduling struct {
		AppointmentDurationInMinutes int
		ExternalCallTimeoutInSeconds int
		LockTTLInSeconds             int
		LockWaitTimeoutInSeconds     int
	}

	Analytics struct {
		// Sinks lists the enabled sinks: mongo, rabbitmq, minio.
		Sinks                 []string
		MongoDBName           string
		MongoCollection       string
		RabbitMQQueue         string
		MinioBucket           string
		MinioObjectPrefix     string
		WriteTimeoutInSeconds int
	}
)

func (a Analytics) Enabled(sink string) bool {
	for _, each := range a.Sinks {
		if each == sink {
			return true
		}
	}
	return false
}
