package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/credentials"

	"github.com/hearthloan/prequal/internal/application/usecase"
	"github.com/hearthloan/prequal/internal/domain/service"
	"github.com/hearthloan/prequal/internal/infrastructure/cache"
	"github.com/hearthloan/prequal/internal/infrastructure/catalog"
	"github.com/hearthloan/prequal/internal/infrastructure/config"
	"github.com/hearthloan/prequal/internal/infrastructure/creditbureau"
	"github.com/hearthloan/prequal/internal/infrastructure/kafka"
	"github.com/hearthloan/prequal/internal/infrastructure/metrics"
	pgrepo "github.com/hearthloan/prequal/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/hearthloan/prequal/internal/presentation/grpc"
	"github.com/hearthloan/prequal/internal/presentation/rest"
	"github.com/hearthloan/prequal/pkg/auth"
	pkgkafka "github.com/hearthloan/prequal/pkg/kafka"
	"github.com/hearthloan/prequal/pkg/observability"
	pkgpostgres "github.com/hearthloan/prequal/pkg/postgres"
	"github.com/hearthloan/prequal/pkg/tlsutil"
)

func main() {
	// Monetary fields go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("prequald exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("prequald stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting prequald", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	// Tracing is optional.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: 1,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	otel.SetMeterProvider(meterProvider)
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	// Database.
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns),

		ApplicationName: cfg.ServiceName,
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), pgrepo.Migrations, pgrepo.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Redis.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Kafka.
	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		ClientID:      cfg.Kafka.ClientID,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer producer.Close()

	// Adapters.
	profiles := cache.NewProfileCache(pgrepo.NewProfileRepo(pool), rdb, cfg.Redis.ProfileTTL, logger)
	prequals := pgrepo.NewPreQualificationRepo(pool)
	applications := pgrepo.NewApplicationRepo(pool)
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	recorder := metrics.NewRecorder(nil)
	bureau := creditbureau.New(creditbureau.Config{
		BaseURL:    cfg.CreditBureau.BaseURL,
		APIKey:     cfg.CreditBureau.APIKey,
		Timeout:    cfg.CreditBureau.Timeout,
		MaxRetries: cfg.CreditBureau.MaxRetries,
	})
	engine := service.NewPreQualificationEngine(policy)

	uc := usecase.Set{
		Prequalify:        usecase.NewPrequalifyUseCase(profiles, prequals, publisher, recorder, engine, logger),
		PrequalHistory:    usecase.NewGetPrequalHistoryUseCase(prequals),
		Schedule:          usecase.NewAmortizationScheduleUseCase(engine.Amortizer()),
		GetProfile:        usecase.NewGetProfileUseCase(profiles),
		UpdateProfile:     usecase.NewUpdateProfileUseCase(profiles, bureau, publisher, logger),
		ListProducts:      usecase.NewListProductsUseCase(catalog.NewStaticCatalog()),
		CreateApplication: usecase.NewCreateApplicationUseCase(applications, publisher),
		GetApplication:    usecase.NewGetApplicationUseCase(applications),
		ListApplications:  usecase.NewListApplicationsUseCase(applications),
		SubmitApplication: usecase.NewSubmitApplicationUseCase(applications, publisher, recorder),
		ClassifyIntent:    usecase.NewClassifyIntentUseCase(service.NewKeywordIntentClassifier()),
	}

	jwtService, err := newJWTService(cfg.JWT)
	if err != nil {
		return err
	}

	// gRPC.
	var creds credentials.TransportCredentials
	if cfg.TLS.Enabled() {
		creds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.ClientCAFile)
		if err != nil {
			return fmt.Errorf("load TLS credentials: %w", err)
		}
	}
	grpcServer := grpcPresentation.NewServer(grpcPresentation.ServerConfig{
		ServiceName: cfg.ServiceName,
		Creds:       creds,
		Reflection:  cfg.GRPCReflection,
	}, grpcPresentation.NewPrequalHandler(uc, logger), jwtService, logger)

	// HTTP.
	health := rest.NewHealthHandler(cfg.ServiceName, map[string]rest.Check{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}, logger)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			API:            rest.NewHandler(uc, logger),
			Health:         health,
			Metrics:        metricsHandler,
			JWT:            jwtService,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newJWTService builds a validation-only JWT service. A public key wins over
// a key file, which wins over the shared secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	switch {
	case cfg.PublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKey
	case cfg.PublicKeyFile != "":
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(key)
	default:
		jwtCfg.Secret = cfg.Secret
	}

	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("init JWT service: %w", err)
	}
	return svc, nil
}
