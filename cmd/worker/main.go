package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huellas-salud/vet-api/internal/config"
	"github.com/huellas-salud/vet-api/internal/repository/postgres"
	announcementService "github.com/huellas-salud/vet-api/internal/service/announcement"
	"github.com/huellas-salud/vet-api/internal/worker"
	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/messaging"
	redisbroker "github.com/huellas-salud/vet-api/pkg/messaging/redis"
)

var processedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vetapi_worker",
	Name:      "events_processed_total",
	Help:      "Lifecycle events consumed off the broker",
}, []string{"event_type"})

// workerConfig is env-only; the worker runs headless in containers where
// no config file is mounted.
type workerConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"huellas_salud"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	SweepInterval        time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	AnnouncementLifetime time.Duration `envconfig:"ANNOUNCEMENT_LIFETIME" default:"168h"`

	MetricsPort int `envconfig:"METRICS_PORT" default:"9091"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("VETAPI", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(nil)

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewBroker(redisbroker.Config{URL: cfg.RedisURL}, l.Zerolog())
	if err != nil {
		l.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		l.Info("metrics listening", map[string]interface{}{"addr": addr})
		if err := http.ListenAndServe(addr, mux); err != nil {
			l.Error(err, "metrics server failed")
		}
	}()

	announcementSvc := announcementService.NewService(
		postgres.NewAnnouncementRepository(db), broker, l)
	scheduler := worker.NewAnnouncementScheduler(
		announcementSvc, cfg.SweepInterval, cfg.AnnouncementLifetime, l)
	go scheduler.Run(ctx)

	subscriber := worker.NewEventSubscriber(broker, l, processedEvents)
	if err := subscriber.Run(ctx, messaging.ChannelAppointments, messaging.ChannelAnnouncements); err != nil {
		l.Fatal(err, "subscriber failed")
	}

	l.Info("worker stopped")
}
