// File: hotelbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbook/config"
	"hotelbook/cron"
	"hotelbook/database"
	hotelRepo "hotelbook/database/repository/hotel"
	inventoryRepo "hotelbook/database/repository/inventory"
	orderRepo "hotelbook/database/repository/order"
	"hotelbook/handlers"
	"hotelbook/middleware"
	"hotelbook/routes"
	"hotelbook/services/hotel"
	"hotelbook/services/order"
	"hotelbook/services/recommend"
	"hotelbook/services/tasks"
	"hotelbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	checks := map[string]utils.Pinger{}

	// repositories.
	var (
		invRepo    inventoryRepo.InventoryRepository
		hotelsRepo hotelRepo.HotelRepository
		ordersRepo orderRepo.OrderRepository
	)
	switch cfg.DataSource {
	case "sql":
		db, err := database.OpenSQL(cfg.SQLDriver, cfg.DatabaseDSN)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open database: %v", err)
		}
		invRepo = inventoryRepo.NewGormInventoryRepo(db)
		hotelsRepo = hotelRepo.NewGormHotelRepo(db)
		if sqlDB, err := db.DB(); err == nil {
			checks["sql"] = sqlDB.PingContext
		}
		if cfg.OrderStore == "sql" {
			ordersRepo = orderRepo.NewGormOrderRepo(db)
		}
	default:
		client, err := database.NewPostgrestClient()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to configure hosted database: %v", err)
		}
		invRepo = inventoryRepo.NewPostgrestInventoryRepo(client)
		hotelsRepo = hotelRepo.NewPostgrestHotelRepo(client)
	}
	if ordersRepo == nil {
		database.InitDB()
		mongoDB := database.MongoDatabase()
		if err := orderRepo.EnsureIndexes(mongoDB); err != nil {
			logger.Warn("main: failed to ensure order indexes", zap.Error(err))
		}
		ordersRepo = orderRepo.NewMongoOrderRepo(mongoDB)
		checks["mongo"] = func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) }
	}

	// Redis backs the listing cache, checkout idempotency and the ledger queue.
	// The API keeps serving without it.
	var (
		cache       hotel.Cache
		idempotency order.IdempotencyStore
		ledger      order.LedgerEnqueuer
		worker      *asynq.Server
		queue       *asynq.Client
	)
	if redisClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB); err != nil {
		logger.Warn("main: Redis unavailable, running without cache and ledger queue", zap.Error(err))
	} else {
		redisCache := utils.NewRedisCache(redisClient)
		cache, idempotency = redisCache, redisCache
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

		queue = asynq.NewClient(cron.QueueRedisOpt())
		ledgerQueue := &tasks.LedgerQueue{Client: queue}
		ledger = ledgerQueue
		worker = cron.InitLedgerWorker(invRepo, ledgerQueue, logger)
	}

	var payments order.PaymentGateway = order.NewSimulatedGateway(logger)
	if cfg.StripeKey != "" {
		payments = order.NewStripeGateway(cfg.StripeKey, nil, logger)
	} else {
		logger.Warn("main: STRIPE_KEY not set, checkout uses the simulated gateway")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// services.
	resolver := recommend.NewResolver(invRepo)
	recommendService := recommend.NewRecommendationService(invRepo, recommend.NewMetrics(registry), logger)
	hotelService := hotel.NewHotelService(hotelsRepo, resolver, cache, cfg.SearchCacheTTL(), logger)
	orderService := order.NewOrderService(ordersRepo, invRepo, payments, ledger, idempotency, cfg.Currency, logger)

	hotelHandler := handlers.NewHotelHandler(hotelService)
	recommendHandler := handlers.NewRecommendHandler(recommendService)
	orderHandler := handlers.NewOrderHandler(orderService)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 60*time.Second, checks)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SearchHotelsHandler:      hotelHandler.SearchHotelsHandler,
		RecommendedHotelsHandler: hotelHandler.RecommendedHotelsHandler,
		GetHotelHandler:          hotelHandler.GetHotelHandler,
		ListRoomsHandler:         hotelHandler.ListRoomsHandler,

		RecommendRoomsHandler: recommendHandler.RecommendRoomsHandler,

		PlaceOrderHandler:     orderHandler.PlaceOrderHandler,
		GetOrderHandler:       orderHandler.GetOrderHandler,
		ListUserOrdersHandler: orderHandler.ListUserOrdersHandler,
		RefundOrderHandler:    orderHandler.RefundOrderHandler,
		DeleteOrderHandler:    orderHandler.DeleteOrderHandler,

		HealthHandler:  handlers.HealthHandler,
		MetricsHandler: gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(ctx)
	}
	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
