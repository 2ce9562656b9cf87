package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrms/internal/docstore"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	projectID := os.Getenv("DATASTORE_PROJECT_ID")
	if projectID == "" {
		return fmt.Errorf("DATASTORE_PROJECT_ID is required")
	}

	dsClient, err := connection.ConnectDatastoreWithRetry(projectID, 5)
	if err != nil {
		return err
	}
	defer dsClient.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	if err := connection.ConnectKafkaWithRetry([]string{kafkaBroker}, 5); err != nil {
		return err
	}

	kafkaWriter := &kafkago.Writer{
		Addr:         kafkago.TCP(kafkaBroker),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(docstore.NewDatastoreClient(dsClient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
