package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trends-service/analyzer"
	"trends-service/auth"
	"trends-service/cache"
	"trends-service/config"
	"trends-service/fetcher"
	"trends-service/handler"
	"trends-service/metrics"
	"trends-service/registry"
	"trends-service/router"
	"trends-service/service"
	"trends-service/store"
	"trends-service/worker"
)

func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database("trendsdb")

	st := store.New(db)
	st.EnsureIndexes(context.Background())
	if err := st.EnsureAdmin(context.Background(), cfg); err != nil {
		log.Printf("[WARN] Failed to seed admin user: %v", err)
	}

	metrics.Init("trends-service", "1.0.0", "production")

	trends := service.New(cfg, registry.New(), fetcher.NewFetcher(cfg))
	h := handler.New(cfg, st, trends, cache.New(), auth.NewSessions(), analyzer.New(cfg))
	r := router.Setup(h)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Radar worker is best-effort: a missing NATS broker degrades the
	// service to on-demand searches only.
	radarWorker, err := worker.NewWorker(cfg, trends, st)
	if err != nil {
		log.Printf("[WARN] Radar worker disabled, NATS unavailable: %v", err)
	} else if err := radarWorker.Start(ctx); err != nil {
		log.Printf("[WARN] Failed to start radar worker: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Trends service starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down trends service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if radarWorker != nil {
		radarWorker.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Trends service stopped")
}
