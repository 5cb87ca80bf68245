package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"umroh_travel_backend/internal/adapters"
	"umroh_travel_backend/internal/adapters/storage"
	"umroh_travel_backend/internal/bookings"
	"umroh_travel_backend/internal/catalog"
	"umroh_travel_backend/internal/customers"
	"umroh_travel_backend/internal/documents"
	"umroh_travel_backend/internal/email"
	"umroh_travel_backend/internal/events"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/http/router"
	"umroh_travel_backend/internal/leads"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/notification"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/internal/scheduler"
	"umroh_travel_backend/migrations"
	"umroh_travel_backend/platform/config"
	"umroh_travel_backend/platform/db"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	// Object storage is optional; documents and payment proofs need it.
	var objectStore storage.StorageService
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		ensureBucket(ctx, log, minioSvc, "documents", cfg.GetMinioBucketDocuments())
		ensureBucket(ctx, log, minioSvc, "payment-proofs", cfg.GetMinioBucketPaymentProofs())
		objectStore = minioSvc
		log.Info("storage service initialized",
			"documentsBucket", cfg.GetMinioBucketDocuments(),
			"paymentProofsBucket", cfg.GetMinioBucketPaymentProofs(),
		)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document generation and payment-proof uploads disabled")
	}

	followUps, closeScheduler := initFollowUpScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	policy, err := permissions.Default()
	if err != nil {
		log.Error("failed to load permission policy", "error", err)
		panic("failed to load permission policy: " + err.Error())
	}

	catalogModule := catalog.NewModule(pool, val, policy, cfg.GetLocation(), log)
	departureReader := adapters.NewCatalogDepartureReader(catalogModule.Repository())
	leadsModule := leads.NewModule(pool, eventBus, val, policy, departureReader, followUps, cfg, log)
	customersModule := customers.NewModule(pool, val, policy, cfg, log)

	var uploader storage.Uploader
	var documentStore storage.ObjectStore
	if objectStore != nil {
		uploader = objectStore
		documentStore = objectStore
	}
	bookingsModule := bookings.NewModule(pool, uploader, cfg.GetMinioBucketPaymentProofs(), val, policy, log)
	documentsModule := documents.NewModule(pool, adapters.NewBookingDocumentReader(bookingsModule.Repository()),
		documentStore, eventBus, val, policy, cfg, log)

	// Booking confirmations go out from the API; follow-up reminders from the worker.
	var deduper notification.Deduper
	if cfg.IsSchedulerEnabled() {
		redisDeduper, err := notification.NewRedisDeduper(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
		if err != nil {
			log.Warn("notification dedupe disabled", "error", err)
		} else {
			defer func() { _ = redisDeduper.Close() }()
			deduper = redisDeduper
		}
	}
	notificationModule := notification.New(email.NewSender(cfg), deduper, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			permissions.NewModule(policy),
			catalogModule,
			leadsModule,
			customersModule,
			bookingsModule,
			documentsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, waiting for event handlers")
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initFollowUpScheduler returns a nil interface, not a typed nil, when Redis
// is unavailable.
func initFollowUpScheduler(cfg *config.Config, log *logger.Logger) (ports.FollowUpScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg, cfg.GetLocation())
	if err != nil {
		log.Error("failed to initialize follow-up scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
