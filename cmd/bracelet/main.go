package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wellband/bracelet/internal/config"
	"github.com/wellband/bracelet/internal/engine"
	"github.com/wellband/bracelet/internal/handler"
	"github.com/wellband/bracelet/internal/health"
	"github.com/wellband/bracelet/internal/history"
	"github.com/wellband/bracelet/internal/mqtt"
	"github.com/wellband/bracelet/internal/reading"
	"github.com/wellband/bracelet/internal/session"
	"github.com/wellband/bracelet/internal/websocket"

	_ "github.com/wellband/bracelet/docs" // Swagger docs
)

// @title Wellness Bracelet Emulator API
// @version 1.0
// @description API виртуального фитнес-браслета.
// @description
// @description ## Описание
// @description Эмулятор генерирует физиологическую телеметрию (пульс, HRV, SpO2, стресс и другие каналы)
// @description с учетом активных сессий тренировки и сна. Показания раздаются по REST, WebSocket и MQTT.
// @description
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@wellband.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http

func main() {
	log.Printf("[INFO] Starting bracelet emulator...")

	// Загрузка конфигурации
	cfg := config.Load()
	log.Printf("[INFO] Configuration loaded: http_port=%s grpc_port=%s driver=%s device_id=%s tick=%s",
		cfg.HTTPPort, cfg.GRPCPort, cfg.StorageDriver, cfg.DeviceID, cfg.TickInterval)

	// Основное хранилище по выбранному драйверу
	var readingRepo reading.Repository
	var sessionRepo session.Repository

	switch cfg.StorageDriver {
	case "postgres":
		rr, err := reading.NewPostgresRepositoryFromDSN(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to PostgreSQL: %v", err)
		}
		sr, err := session.NewPostgresRepositoryFromDSN(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to PostgreSQL: %v", err)
		}
		readingRepo, sessionRepo = rr, sr
		log.Printf("[INFO] Using PostgreSQL storage")
	case "memory":
		readingRepo = reading.NewMemoryRepository()
		sessionRepo = session.NewMemoryRepository()
		log.Printf("[INFO] Using in-memory storage, data will not survive restart")
	default:
		rr, err := reading.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open SQLite database: %v", err)
		}
		sr, err := session.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open SQLite database: %v", err)
		}
		readingRepo, sessionRepo = rr, sr
		log.Printf("[INFO] Using SQLite storage at %s", cfg.SQLitePath)
	}
	defer readingRepo.Close()
	defer sessionRepo.Close()

	// Redis кэш, пустой адрес отключает
	ctx := context.Background()
	var redisClient *redis.Client
	var readingCache reading.CacheStore
	var sessionCache session.CacheStore

	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Redis unavailable, continuing without cache: %v", err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Printf("[INFO] Connected to Redis at %s", cfg.RedisAddr)
			readingCache = reading.NewRedisStore(redisClient)
			sessionCache = session.NewRedisStore(redisClient)
			defer redisClient.Close()
		}
	}

	// Сессии и запись показаний
	sessionManager := session.NewManager(sessionCache, sessionRepo)
	sessionManager.RestoreActive(ctx)

	recorder := reading.NewRecorder(readingRepo, readingCache, cfg.DeviceID)

	// WebSocket трансляция
	hub := websocket.NewHub()
	go hub.Run()

	// MQTT публикация, пустой адрес брокера отключает
	var publisher mqtt.Publisher
	if cfg.MQTTBroker != "" {
		realPublisher, err := mqtt.NewRealPublisher(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.Printf("[WARN] MQTT broker unavailable, readings will not be published: %v", err)
			publisher = mqtt.NewNoopPublisher()
		} else {
			log.Printf("[INFO] Connected to MQTT broker at %s", cfg.MQTTBroker)
			publisher = realPublisher
		}
	} else {
		publisher = mqtt.NewNoopPublisher()
	}
	defer publisher.Close()

	// Движок эмулятора
	eng := engine.New(sessionManager, recorder, engine.Config{
		Interval: cfg.TickInterval,
		Seed:     cfg.RandomSeed,
		OnReading: func(r engine.Reading) {
			hub.BroadcastReading(r)
			if err := publisher.PublishReading(r); err != nil {
				log.Printf("[WARN] Failed to publish reading to MQTT: %v", err)
			}
		},
		OnBatteryLow: func(level float64) {
			hub.BroadcastBatteryLow(level)
			event := mqtt.Event{Timestamp: time.Now(), Event: "BATTERY_LOW", Level: level}
			if err := publisher.PublishEvent(event); err != nil {
				log.Printf("[WARN] Failed to publish battery event to MQTT: %v", err)
			}
		},
	})

	// Бэкфилл дневной истории при пустом хранилище
	generator := history.NewGenerator(cfg.HistoryDays, cfg.RandomSeed)
	if err := generator.Backfill(ctx, readingRepo); err != nil {
		log.Printf("[ERROR] History backfill failed: %v", err)
	}

	// Настройка маршрутов
	router := mux.NewRouter()
	handler.NewHTTPHandler(eng).RegisterRoutes(router)
	session.NewHTTPHandler(sessionManager).RegisterRoutes(router)
	reading.NewHTTPHandler(readingRepo, readingCache, cfg.DeviceID).RegisterRoutes(router)

	router.HandleFunc("/ws", hub.HandleWebSocket)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Endpoint для отладки
	router.HandleFunc("/debug/stats", func(w http.ResponseWriter, r *http.Request) {
		stats := map[string]interface{}{
			"engine":     eng.GetStats(),
			"ws_clients": hub.ClientCount(),
			"driver":     cfg.StorageDriver,
			"timestamp":  time.Now().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	})

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      enableCORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[INFO] HTTP server listening on :%s", cfg.HTTPPort)
		log.Printf("[INFO] Swagger UI available at http://localhost:%s/swagger/index.html", cfg.HTTPPort)
		log.Printf("[INFO] Debug stats available at http://localhost:%s/debug/stats", cfg.HTTPPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] HTTP server failed: %v", err)
		}
	}()

	// gRPC сервер с health check и reflection
	grpcServer := grpc.NewServer()

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	grpcAddress := fmt.Sprintf(":%s", cfg.GRPCPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		log.Fatalf("[FATAL] Failed to listen on %s: %v", grpcAddress, err)
	}

	log.Printf("[INFO] gRPC server listening on %s", grpcAddress)

	healthServer.SetServing("")
	healthServer.SetServing("bracelet.engine")
	healthServer.SetServing("bracelet.storage")
	if redisClient != nil {
		healthServer.SetServing("bracelet.cache")
	}

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatalf("[FATAL] gRPC server failed: %v", err)
		}
	}()

	if err := publisher.PublishEvent(mqtt.Event{Timestamp: time.Now(), Event: "STARTUP"}); err != nil {
		log.Printf("[WARN] Failed to publish startup event to MQTT: %v", err)
	}

	if cfg.AutoStart {
		log.Printf("[INFO] Auto-start enabled")
		eng.Start()
	}

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("[INFO] Received signal %v, starting graceful shutdown...", sig)

	eng.Stop()

	healthServer.SetNotServing("")
	healthServer.SetNotServing("bracelet.engine")
	healthServer.SetNotServing("bracelet.storage")

	if err := publisher.PublishEvent(mqtt.Event{Timestamp: time.Now(), Event: "SHUTDOWN"}); err != nil {
		log.Printf("[WARN] Failed to publish shutdown event to MQTT: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] HTTP server forced to shutdown: %v", err)
	}

	grpcServer.GracefulStop()

	log.Printf("[INFO] Server stopped")
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			return
		}

		next.ServeHTTP(w, r)
	})
}
