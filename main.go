package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivrya/config"
	"delivrya/handlers"
	"delivrya/logger"
	"delivrya/routes"
	"delivrya/tracking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	if err := config.InitDB(cfg.Database); err != nil {
		log.Fatal("database", zap.Error(err))
	}

	trackerOpts := []tracking.Option{
		tracking.WithDelays(cfg.Tracking.PreparingDelay, cfg.Tracking.OnTheWayDelay),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := tracking.NewKafkaPublisher(tracking.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer pub.Close()
		trackerOpts = append(trackerOpts, tracking.WithPublisher(pub))
		log.Info("publishing order status to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	handlers.Configure(handlers.Deps{
		Log:            log,
		DeliveryFee:    cfg.DeliveryFee(),
		PublicURL:      cfg.Server.PublicURL,
		TrackerOptions: trackerOpts,
		OrderRetention: cfg.Tracking.Retention,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.NewHandler(log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", zap.String("addr", "http://localhost:"+cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	handlers.StopTracking()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
