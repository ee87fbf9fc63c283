package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anilkoundinya7/E-Commerce/config"
	"github.com/anilkoundinya7/E-Commerce/controllers"
	"github.com/anilkoundinya7/E-Commerce/database"
	"github.com/anilkoundinya7/E-Commerce/kafka"
	"github.com/anilkoundinya7/E-Commerce/pkg/logger"
	"github.com/anilkoundinya7/E-Commerce/repository"
	"github.com/anilkoundinya7/E-Commerce/routes"
	"github.com/anilkoundinya7/E-Commerce/services"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	store, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("mongo connection failed", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	log.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatal("token service init failed", zap.Error(err))
	}

	// Catalog cache is optional; without REDIS_URL every read hits Mongo.
	var cache *services.CacheManager
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		cache = services.NewCacheManager(redisClient, cfg.CacheTTL, log)
		log.Info("catalog cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	// Order event feed is optional and best-effort.
	var producer services.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic, log)
		defer kp.Close()
		producer = kp
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("failed to create upload dir", zap.Error(err))
	}

	db := store.Database()
	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	cartRepo := repository.NewMongoCartRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	locks := services.NewUserLocks()
	userSvc := services.NewUserService(userRepo, tokens)
	productSvc := services.NewProductService(productRepo, cache)
	cartSvc := services.NewCartService(cartRepo, locks)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, productRepo, store, locks, producer, cache, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())
	router.Static("/uploads", cfg.UploadDir)

	routes.Register(router,
		tokens,
		controllers.NewUserController(userSvc),
		controllers.NewProductController(productSvc, cfg.UploadDir),
		controllers.NewCartController(cartSvc),
		controllers.NewOrderController(orderSvc),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server shutdown complete")
}
