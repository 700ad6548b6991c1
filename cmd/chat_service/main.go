package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"band_booking_service/internal/chat/app"
	"band_booking_service/internal/chat/repository"
	"band_booking_service/internal/chat/router"
	"band_booking_service/pkg/config"
	"band_booking_service/pkg/database"
	"band_booking_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	ctx := context.Background()

	// Mongo holds conversations and messages
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	if err := repository.EnsureConversationIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal("Unable to ensure conversation indexes", zap.Error(err))
	}

	// Postgres holds the user/band directory
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL after retries", zap.Error(err))
	}
	defer pool.Close()

	// Redis mirrors presence entries for a scaled deployment
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	presence := database.NewRedisRepository[string](redisClient)

	directory := repository.NewMemberDirectory(pool)
	convRepo := repository.NewMongoConversationRepository(mongo.Database, directory)

	hub := app.NewHub(presence, config.EnvConfig.ChatService)
	convUC := app.NewConversationUseCase(convRepo, directory)
	sendMessageUC := app.NewSendMessageUseCase(convRepo, hub)
	injector := app.NewBookingEventInjector(convRepo, hub)

	// booking lifecycle notifications feed the injector
	reader, err := database.NewKafkaReaderWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		GroupID:       cfg.Kafka.GroupID,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to kafka after retries", zap.Error(err))
	}
	defer reader.Close()

	listener := app.NewBookingEventListener(reader, injector)
	go listener.Run(ctx)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewChatWebsocketHandler(sendMessageUC, hub), app.NewChatHTTPHandler(convUC))

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
