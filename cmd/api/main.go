package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"google.golang.org/api/option"

	"storefront/internal/adapter/api"
	"storefront/internal/adapter/api/handler"
	apimiddleware "storefront/internal/adapter/api/middleware"
	"storefront/internal/adapter/api/router"
	"storefront/internal/adapter/repository"
	"storefront/internal/adapter/repository/memory"
	domainrepo "storefront/internal/domain/repository"
	"storefront/internal/infrastructure/firebase"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/internal/infrastructure/token"
	"storefront/internal/usecase"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// stores bundles one repository per collection plus what main needs to
// probe and close the backing store.
type stores struct {
	users      domainrepo.UserRepository
	products   domainrepo.ProductRepository
	categories domainrepo.CategoryRepository
	carts      domainrepo.CartRepository
	orders     domainrepo.OrderRepository
	reviews    domainrepo.ReviewRepository

	health   handler.StorePinger
	identity usecase.IdentityProvider
	verifier apimiddleware.IDTokenVerifier
	closers  []func() error
}

func (s *stores) Close() error {
	var err error
	for _, closeFn := range s.closers {
		err = multierr.Append(err, closeFn())
	}
	return err
}

func credentials(cfg *config.Config) option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	}
	if cfg.FirebaseServiceAccountPath != "" {
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		return option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	}
	return nil
}

func openFirestore(ctx context.Context, cfg *config.Config) (*stores, error) {
	var opts []option.ClientOption
	if opt := credentials(cfg); opt != nil {
		opts = append(opts, opt)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, err
	}
	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, err
	}
	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, err
	}

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	return &stores{
		users:      repository.NewFirestoreUserRepository(firestoreClient),
		products:   repository.NewFirestoreProductRepository(firestoreClient),
		categories: repository.NewFirestoreCategoryRepository(firestoreClient),
		carts:      repository.NewFirestoreCartRepository(firestoreClient),
		orders:     repository.NewFirestoreOrderRepository(firestoreClient),
		reviews:    repository.NewFirestoreReviewRepository(firestoreClient),
		health:     repository.NewFirestoreHealth(firestoreClient),
		identity:   firebaseAuthClient,
		verifier:   firebaseAuthClient,
		closers:    []func() error{firestoreClient.Close},
	}, nil
}

// openMemory serves local runs. Accounts come from /api/auth/register and
// /_dev/token; there is no Firebase to verify ID tokens against.
func openMemory() *stores {
	store := memory.NewStore()
	return &stores{
		users:      store.Users(),
		products:   store.Products(),
		categories: store.Categories(),
		carts:      store.Carts(),
		orders:     store.Orders(),
		reviews:    store.Reviews(),
		health:     store,
		identity:   memory.NewIdentity(),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Setup(logger.Options{
		ServiceName: "storefront",
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *stores
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		st = openMemory()
	default:
		st, err = openFirestore(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize Firebase: %v", err)
			os.Exit(1)
		}
	}

	issuer, err := token.NewIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	if err != nil {
		logger.Error("Failed to initialize token issuer: %v", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	retrier := usecase.NewRetrier(cfg.StoreRetryAttempts, m)

	accessUseCase := usecase.NewAccessUseCase(st.users, retrier)
	authUseCase := usecase.NewAuthUseCase(st.users, st.identity, issuer, usecase.AdminCredentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, retrier)
	catalogUseCase := usecase.NewCatalogUseCase(st.products, st.categories, st.users, st.reviews, retrier)
	searchUseCase := usecase.NewSearchUseCase(st.products, retrier)
	cartUseCase := usecase.NewCartUseCase(st.carts, st.products, st.users, retrier)
	orderUseCase := usecase.NewOrderUseCase(st.orders, retrier, m, usecase.OrderOptions{
		MultiVendorPolicy:    cfg.MultiVendorPolicy,
		DecrementStock:       cfg.DecrementStock,
		DefaultPaymentMethod: cfg.DefaultPaymentLabel,
	})
	reviewUseCase := usecase.NewReviewUseCase(st.reviews, st.products, st.orders, st.users, retrier)

	handler.Setup(authUseCase, catalogUseCase, searchUseCase, cartUseCase, orderUseCase, reviewUseCase)
	handler.SetupHealthHandler(st.health)
	handler.SetupDevTokenHandler(st.users, issuer)

	e := echo.New()
	e.HideBanner = true

	limiter := ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Logger().Info()
			if v.Error != nil {
				event = logger.Logger().Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(apimiddleware.Metrics(m))
	e.Use(apimiddleware.RateLimit(limiter))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(st.verifier, issuer)
	accessMiddleware := apimiddleware.NewAccessMiddleware(accessUseCase)

	router.Setup(e, authMiddleware, accessMiddleware, cfg.Environment)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := multierr.Combine(e.Shutdown(shutdownCtx), st.Close()); err != nil {
		logger.Error("Shutdown finished with errors: %v", err)
		os.Exit(1)
	}
}
