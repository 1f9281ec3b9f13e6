package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fulfillment-service/internal/config"
	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/rabbit"
	"fulfillment-service/internal/repository"
	"fulfillment-service/internal/router"
	"fulfillment-service/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("fulfillment service terminó con error")
		os.Exit(1)
	}
}

// run levanta dependencias y el servidor HTTP hasta que ctx se cancela.
// Los errores se devuelven para que los defers cierren Mongo y RabbitMQ.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// Conexión a MongoDB
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("conexión a MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("ping a MongoDB: %w", err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorios
	categoryRepo := repository.NewMongoCategoryRepository(db)
	shippingRepo := repository.NewMongoShippingRepository(db)
	returnRepo := repository.NewMongoReturnRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"categories":     categoryRepo.EnsureIndexes,
		"shippinginfos":  shippingRepo.EnsureIndexes,
		"returnrequests": returnRepo.EnsureIndexes,
	} {
		if err := ensure(connectCtx); err != nil {
			return fmt.Errorf("creando índices de %s: %w", name, err)
		}
	}

	// Conexión a RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("conexión a RabbitMQ: %w", err)
	}
	defer conn.Close()

	pubCh, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("creando canal de publicación: %w", err)
	}
	publisher, err := rabbit.NewPublisher(pubCh)
	if err != nil {
		return fmt.Errorf("declarando exchange de estados: %w", err)
	}

	// Servicios
	shippingService := service.NewShippingService(shippingRepo, publisher, log)
	returnService := service.NewReturnService(returnRepo, log)
	categoryService := service.NewCategoryService(categoryRepo)
	authService := service.NewAuthService(cfg.AuthURL)

	consumeCh, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("creando canal de consumo: %w", err)
	}
	consumer := rabbit.NewPlaceOrderConsumer(shippingService, log)
	if err := rabbit.SetupConsumers(ctx, consumeCh, consumer, log); err != nil {
		return fmt.Errorf("suscribiendo consumers: %w", err)
	}

	r := router.New(router.Deps{
		Log:        log,
		Auth:       authService,
		Categories: categoryService,
		Shipping:   shippingService,
		Returns:    returnService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("fulfillment service escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("servidor HTTP: %w", err)
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("apagando")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	return nil
}
