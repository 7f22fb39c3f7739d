package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	MongoDB        *mongo.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Calendar       *calendar.Service
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// AnalyticsDrain if set is called during Shutdown to let in-flight analytics writes finish
	AnalyticsDrain func(ctx context.Context)
}

// Shutdown releases the drivers that were opened. Sinks that are disabled in
// configuration never open their driver, so nil clients are skipped.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.AnalyticsDrain != nil {
		b.AnalyticsDrain(ctx)
		log.Println("Successfully drained analytics writes")
	}

	if b.Redis != nil {
		err := b.Redis.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.MongoDB != nil {
		err := b.MongoDB.Disconnect(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully closing MongoDB")
	}

	if b.RabbitMQ != nil {
		err := b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.Logger != nil {
		// Sync on stdout/stderr returns EINVAL on some platforms; nothing to do about it.
		_ = b.Logger.Sync()
	}

	return nil
}
