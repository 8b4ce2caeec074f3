package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/huellas-salud/vet-api/internal/config"
	"github.com/huellas-salud/vet-api/internal/email"
	announcementHandler "github.com/huellas-salud/vet-api/internal/handler/announcement"
	appointmentHandler "github.com/huellas-salud/vet-api/internal/handler/appointment"
	healthHandler "github.com/huellas-salud/vet-api/internal/handler/health"
	invoiceHandler "github.com/huellas-salud/vet-api/internal/handler/invoice"
	petHandler "github.com/huellas-salud/vet-api/internal/handler/pet"
	productHandler "github.com/huellas-salud/vet-api/internal/handler/product"
	scheduleHandler "github.com/huellas-salud/vet-api/internal/handler/schedule"
	userHandler "github.com/huellas-salud/vet-api/internal/handler/user"
	vetserviceHandler "github.com/huellas-salud/vet-api/internal/handler/vetservice"
	"github.com/huellas-salud/vet-api/internal/repository/cached"
	"github.com/huellas-salud/vet-api/internal/repository/postgres"
	"github.com/huellas-salud/vet-api/internal/router"
	"github.com/huellas-salud/vet-api/internal/scheduling"
	announcementService "github.com/huellas-salud/vet-api/internal/service/announcement"
	appointmentService "github.com/huellas-salud/vet-api/internal/service/appointment"
	invoiceService "github.com/huellas-salud/vet-api/internal/service/invoice"
	petService "github.com/huellas-salud/vet-api/internal/service/pet"
	productService "github.com/huellas-salud/vet-api/internal/service/product"
	scheduleService "github.com/huellas-salud/vet-api/internal/service/schedule"
	userService "github.com/huellas-salud/vet-api/internal/service/user"
	"github.com/huellas-salud/vet-api/internal/service/vetservice"
	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/messaging"
	redisbroker "github.com/huellas-salud/vet-api/pkg/messaging/redis"
	"github.com/huellas-salud/vet-api/pkg/metrics"
	"github.com/huellas-salud/vet-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	l := logger.New(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Console:    cfg.Logging.Console,
	})

	if err := validator.RegisterCustom(); err != nil {
		l.Fatal(err, "failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewBroker(redisbroker.Config{URL: cfg.Redis.URL}, l.Zerolog())
		if err != nil {
			l.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()
	}

	var mailer email.Sender
	if cfg.Email.Enabled {
		mailer = email.NewSMTPSender(cfg.Email)
	} else {
		mailer = email.NewNoopSender()
	}

	m := metrics.New("vetapi")
	cache := gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)

	userRepo := postgres.NewUserRepository(db)
	petRepo := postgres.NewPetRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	productRepo := postgres.NewProductRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	scheduleRepo := cached.NewScheduleRepository(postgres.NewScheduleRepository(db), cache, m)
	appointmentRepo := cached.NewAppointmentRepository(postgres.NewAppointmentRepository(db), cache, m)

	checker := scheduling.NewChecker(scheduleRepo, appointmentRepo)

	userSvc := userService.NewService(userRepo)
	petSvc := petService.NewService(petRepo, userRepo)
	serviceSvc := vetservice.NewService(serviceRepo, petRepo)
	productSvc := productService.NewService(productRepo)
	announcementSvc := announcementService.NewService(announcementRepo, broker, l)
	invoiceSvc := invoiceService.NewService(invoiceRepo, userRepo, productRepo, serviceRepo, petRepo)
	scheduleSvc := scheduleService.NewService(scheduleRepo, userRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo, userRepo, petRepo, serviceRepo, checker, broker, mailer, m, l)

	r := router.New(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RequestTimeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		},
		l, m,
		healthHandler.NewHandler(db),
		userHandler.NewHandler(userSvc),
		petHandler.NewHandler(petSvc),
		vetserviceHandler.NewHandler(serviceSvc),
		productHandler.NewHandler(productSvc),
		announcementHandler.NewHandler(announcementSvc),
		invoiceHandler.NewHandler(invoiceSvc),
		scheduleHandler.NewHandler(scheduleSvc),
		appointmentHandler.NewHandler(appointmentSvc),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		l.Info("server listening", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error(err, "forced shutdown")
	}
}
