//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/application"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	"github.com/FieldShare-Rentals/service-rental/internal/events"
	"github.com/FieldShare-Rentals/service-rental/internal/kafka"
	"github.com/FieldShare-Rentals/service-rental/internal/repository"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// rentalStack holds the wired service components under test.
type rentalStack struct {
	Reservations *application.ReservationService
	Lifecycle    *application.LifecycleService
	Repo         *repository.GormBookingRepository
	Close        func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable", pgHost, pgPort.Port())

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.EquipmentModel{}, &repository.BookingModel{}))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicBookingEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupRentalStack wires the reservation and lifecycle services against the
// given database and Kafka brokers.
func setupRentalStack(t *testing.T, db *gorm.DB, brokers []string) *rentalStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	repo := repository.NewGormBookingRepository(db)
	directory := repository.NewGormEquipmentDirectory(db)
	pricing := bookingDomain.NewTieredPricingStrategy()
	producer := kafka.NewProducer(brokers, logger)

	return &rentalStack{
		Reservations: application.NewReservationService(repo, directory, pricing, producer, logger),
		Lifecycle:    application.NewLifecycleService(repo, directory, producer, logger),
		Repo:         repo,
		Close:        func() { _ = producer.Close() },
	}
}

// seedEquipment inserts an equipment listing owned by ownerID and returns its ID.
func seedEquipment(t *testing.T, db *gorm.DB, ownerID uuid.UUID, hourly, daily float64) uuid.UUID {
	t.Helper()
	model := repository.EquipmentModel{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		EquipmentType: "excavator",
		Description:   "integration test rig",
		HourlyPrice:   hourly,
		DailyPrice:    daily,
		LocationLat:   3.139,
		LocationLng:   101.6869,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed equipment")
	return model.ID
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     fmt.Sprintf("test-assert-%s", uuid.New().String()[:8]),
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so the first publish does not race
// topic auto-creation.
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	time.Sleep(1 * time.Second)
}
