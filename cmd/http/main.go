package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tracybot-service/internal/app/config"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/delivery/http/controllers"
	"tracybot-service/internal/app/delivery/http/middlewares"
	"tracybot-service/internal/app/delivery/http/routers"
	calendarDriver "tracybot-service/internal/app/drivers/calendar"
	"tracybot-service/internal/app/drivers/database"
	"tracybot-service/internal/app/drivers/logger"
	"tracybot-service/internal/app/drivers/messaging"
	"tracybot-service/internal/app/drivers/storage"
	"tracybot-service/internal/app/services/core/scheduling"
	"tracybot-service/internal/app/services/shared/analytics"
	"tracybot-service/internal/app/services/shared/gcalendar"
	"tracybot-service/internal/app/services/shared/locker"
	"tracybot-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	settings, err := scheduling.NewSettings(internalConfig)
	if err != nil {
		log.Fatal("Error loading scheduling settings", zap.Error(err))
	}

	err = analytics.ValidateSinkNames(internalConfig.Analytics.Sinks)
	if err != nil {
		log.Fatal("Error loading analytics settings", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig, log),
		Calendar:       calendarDriver.NewGoogleCalendar(context.Background(), driverConfig, log),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	// analytics drivers are only opened for the sinks that are enabled
	if internalConfig.Analytics.Enabled(analytics.SinkMongo) {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig, log)
	}
	if internalConfig.Analytics.Enabled(analytics.SinkRabbitMQ) {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, log)
	}
	if internalConfig.Analytics.Enabled(analytics.SinkMinio) {
		bootstrap.Minio = storage.NewMinio(driverConfig, log)
	}

	err = bootstrapingTheApp(bootstrap, settings)
	if err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server listening", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error closing drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, settings scheduling.Settings) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)

	calendarLimiter := rate.NewLimiter(rate.Inf, 1)
	if perSecond := internalConfig.Calendar.RequestsPerSecond; perSecond > 0 {
		calendarLimiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
	calendarClient := gcalendar.NewCalendarClient(
		bootstrap.Calendar,
		calendarLimiter,
		settings.Location,
		time.Duration(internalConfig.Scheduling.ExternalCallTimeoutInSeconds)*time.Second,
		log,
	)

	sinks, err := buildAnalyticsSinks(bootstrap)
	if err != nil {
		return err
	}
	dispatcher := analytics.NewDispatcher(
		analytics.NewFanoutSink(log, sinks...),
		time.Duration(internalConfig.Analytics.WriteTimeoutInSeconds)*time.Second,
		log,
	)
	bootstrap.AnalyticsDrain = dispatcher.Drain

	slotBooker := scheduling.NewSlotBooker(settings, calendarClient, lockerService, dispatcher, time.Now, log)
	messageRelay := scheduling.NewMessageRelay(settings, calendarClient, lockerService, dispatcher, time.Now, log)
	agendaExporter := scheduling.NewAgendaExporter(settings, calendarClient, time.Now, log)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		controllers.NewFulfillmentController(log, slotBooker, messageRelay),
		controllers.NewAgendaController(log, agendaExporter),
		controllers.NewHealthController(internalConfig),
	)
	return nil
}

func buildAnalyticsSinks(bootstrap *config.Bootstrap) ([]contracts.AnalyticsSink, error) {
	log := bootstrap.Logger
	analyticsConfig := bootstrap.InternalConfig.Analytics

	var sinks []contracts.AnalyticsSink
	if bootstrap.MongoDB != nil {
		sinks = append(sinks, analytics.NewMongoSink(bootstrap.MongoDB, analyticsConfig.MongoDBName, analyticsConfig.MongoCollection, log))
	}
	if bootstrap.RabbitMQ != nil {
		queueSink, err := analytics.NewQueueSink(bootstrap.RabbitMQ, analyticsConfig.RabbitMQQueue, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, queueSink)
	}
	if bootstrap.Minio != nil {
		sinks = append(sinks, analytics.NewObjectSink(bootstrap.Minio, analyticsConfig.MinioBucket, analyticsConfig.MinioObjectPrefix, log))
	}

	if len(sinks) == 0 {
		log.Warn("No analytics sink enabled, analytics records will be dropped")
	}
	return sinks, nil
}
