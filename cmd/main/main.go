package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"studenthub/internal/app"
	"studenthub/internal/cart"
	"studenthub/internal/catalog"
	handlersCart "studenthub/internal/handlers/shopping_cart"
	handlersProjects "studenthub/internal/handlers/projects"
	"studenthub/internal/kafka"
	"studenthub/internal/middleware"
	"studenthub/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init cart storage: Redis, если настроен, иначе память процесса
	var kv storage.KV = storage.NewMemoryStorage()
	if c.CfgRedis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     c.CfgRedis.Addr,
			Password: c.CfgRedis.Password,
			DB:       c.CfgRedis.DB,
		})
		defer redisClient.Close()

		kv = storage.NewRedisStorage(redisClient, logger, c.CfgRedis.TTL, c.CfgRedis.Timeout)
	} else {
		logger.Warn("redis is not configured, carts will live in memory only")
	}

	hooks := []cart.Hook{middleware.CartMetricsHook}
	if len(c.CfgKafka.Brokers) > 0 {
		producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warnf("error to close kafka producer: %v", err)
			}
		}()

		hooks = append(hooks, kafka.CartHook(producer, logger))
	}

	// init repository
	projectRepository := catalog.NewProjectDBRepository(db, logger)
	carts := cart.NewRegistry(storage.NewInstrumented(kv), c.CfgCart.KeyPrefix, c.CartIdleTTL(), logger, hooks...)

	// init handlers
	cartHandlers := handlersCart.NewShoppingCartHandler(logger, carts, projectRepository)
	projectHandlers := handlersProjects.NewProjectHandler(logger, projectRepository)

	// init router
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.MetricsMiddleware)

	api.HandleFunc("/projects", projectHandlers.List).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandlers.GetByID).Methods("GET")

	api.HandleFunc("/cart/{sessionID}", cartHandlers.GetCart).Methods("GET")
	api.HandleFunc("/cart/{sessionID}", cartHandlers.ClearShoppingCart).Methods("DELETE")
	api.HandleFunc("/cart/{sessionID}/item/{projectID}", cartHandlers.AddToShoppingCart).Methods("POST")
	api.HandleFunc("/cart/{sessionID}/item/{itemID}", cartHandlers.DeleteFromShoppingCart).Methods("DELETE")
	api.HandleFunc("/cart/{sessionID}/discount", cartHandlers.SetDiscount).Methods("PUT")
	api.HandleFunc("/cart/{sessionID}/quotation", cartHandlers.GetQuotation).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("can't start server: %v", err)
	}
}
