package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/SpamShield/pkg/app/antispam"
	"github.com/NeuralTrust/SpamShield/pkg/app/blockpage"
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	appSettings "github.com/NeuralTrust/SpamShield/pkg/app/settings"
	"github.com/NeuralTrust/SpamShield/pkg/common"
	"github.com/NeuralTrust/SpamShield/pkg/config"
	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	handlers "github.com/NeuralTrust/SpamShield/pkg/handlers/http"
	"github.com/NeuralTrust/SpamShield/pkg/infra/auth/jwt"
	infraCache "github.com/NeuralTrust/SpamShield/pkg/infra/cache"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/event"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cleantalk"
	"github.com/NeuralTrust/SpamShield/pkg/infra/database"
	"github.com/NeuralTrust/SpamShield/pkg/infra/httpx"
	infraLogger "github.com/NeuralTrust/SpamShield/pkg/infra/logger"
	_ "github.com/NeuralTrust/SpamShield/pkg/infra/migrations"
	"github.com/NeuralTrust/SpamShield/pkg/infra/repository"
	"github.com/NeuralTrust/SpamShield/pkg/middleware"
	"github.com/NeuralTrust/SpamShield/pkg/server"
	"github.com/NeuralTrust/SpamShield/pkg/server/router"
	"github.com/NeuralTrust/SpamShield/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	serverTypeStorefront = "storefront"
	serverTypeAdmin      = "admin"
	commandToken         = "token"
	commandRollback      = "rollback"
)

func main() {
	serverType := getServerType()
	envFile := os.Getenv("ENV_FILE")

	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("./config"); err != nil {
		if !errors.Is(err, config.ErrConfigFileNotFound) {
			log.Fatalf("failed to load configuration: %v", err)
		}
		log.Println(err)
	}
	cfg := config.GetConfig()

	if serverType == commandToken {
		printAdminToken(cfg)
		return
	}

	logger, logCloser, err := infraLogger.NewLogger(serverType)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if serverType == commandRollback {
		id, err := database.NewMigrationsManager(db.DB).RollbackLast(ctx)
		if err != nil {
			logger.Fatalf("Failed to roll back migration: %v", err)
		}
		logger.WithField("migration", id).Info("migration rolled back")
		return
	}

	cacheClient, err := infraCache.NewClient(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}
	memoryCache := cacheClient.CreateTTLMap(infraCache.SettingsTTLName, common.SettingsCacheTTL)

	// redis publisher
	redisPublisher := infraCache.NewRedisEventPublisher(cacheClient, channel.SettingsEventsChannel)
	redisListener := infraCache.NewRedisEventListener(logger, cacheClient)

	// subscribers
	settingsChangedSubscriber := subscriber.NewSettingsChangedEventSubscriber(logger, memoryCache)
	infraCache.RegisterEventSubscriber[event.SettingsChangedEvent](redisListener, settingsChangedSubscriber)

	// repository
	orderRepository := repository.NewOrderRepository(db.DB)
	settingsStore := infraCache.NewSettingsStore(
		logger,
		repository.NewConfigurationRepository(db.DB),
		cacheClient,
		redisPublisher,
		common.SettingsCacheTTL,
	)
	settingsProvider := settings.NewProvider(settingsStore)

	// verdict transport
	httpClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.CleanTalk.Timeout),
		httpx.WithMaxConnsPerHost(cfg.CleanTalk.MaxConnsPerHost),
		httpx.WithUserAgent(version.Agent(cfg.CleanTalk.Platform)),
		httpx.WithAcceptEncoding(cfg.CleanTalk.AcceptEncoding),
	)
	cleantalkClient := cleantalk.NewClient(
		logger,
		httpClient,
		cfg.CleanTalk.ServerURL,
		cleantalk.WithCircuitBreaker(httpx.NewCircuitBreaker(
			"cleantalk",
			cfg.CleanTalk.BreakerTimeout,
			cfg.CleanTalk.BreakerMaxFailures,
		)),
	)

	// service
	spamCheckClient := antispam.NewSpamCheckClient(
		logger,
		settingsProvider,
		cleantalkClient,
		version.Agent(cfg.CleanTalk.Platform),
		cfg.CleanTalk.Timeout,
	)
	renderer := blockpage.NewRenderer(cfg.BlockPage.TemplatePath)
	plugin := integration.NewPlugin(
		logger,
		spamCheckClient,
		renderer,
		orderRepository,
		settingsProvider,
		integration.Options{FailOpenOnUnavailable: cfg.Antispam.FailOpenOnUnavailable},
	)
	settingsManager := appSettings.NewManager(logger, settingsStore)
	jwtManager := jwt.NewJwtManager(&cfg.Server)

	// middleware
	middlewareTransport := &middleware.Transport{
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, jwtManager),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
		SecurityMiddleware:     middleware.NewSecurityMiddleware(middleware.DefaultSecurityConfig()),
	}

	// handler transport
	handlerTransport := &handlers.HandlerTransport{
		// Storefront
		SubmitAccountHandler: handlers.NewSubmitAccountHandler(logger, plugin),
		ContactHandler:       handlers.NewContactHandler(logger, plugin),
		OrderHandler:         handlers.NewOrderHandler(logger, plugin, orderRepository),
		NewsletterHandler:    handlers.NewNewsletterHandler(logger, plugin),
		HeaderHandler:        handlers.NewHeaderHandler(plugin),
		HealthHandler:        handlers.NewHealthHandler(),
		// Admin
		GetVersionHandler:     handlers.NewGetVersionHandler(logger),
		GetSettingsHandler:    handlers.NewGetSettingsHandler(logger, settingsManager),
		UpdateSettingsHandler: handlers.NewUpdateSettingsHandler(logger, settingsManager),
		InstallHandler:        handlers.NewInstallHandler(logger, settingsManager),
		UninstallHandler:      handlers.NewUninstallHandler(logger, settingsManager),
	}

	servers := initializeServers(serverType, cfg, logger, middlewareTransport, handlerTransport)

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(srv.Run)
	}
	if serverType == serverTypeStorefront {
		g.Go(func() error {
			logger.Info("starting listening redis events...")
			redisListener.Listen(gctx, channel.SettingsEventsChannel)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}

func getServerType() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return serverTypeStorefront
}

func initializeServers(
	serverType string,
	cfg *config.Config,
	logger *logrus.Logger,
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) []server.Server {
	switch serverType {
	case serverTypeAdmin:
		return []server.Server{
			server.NewAdminServer(server.AdminServerDI{
				Config:  cfg,
				Logger:  logger,
				Routers: []router.ServerRouter{router.NewAdminRouter(middlewareTransport, handlerTransport)},
			}),
		}
	default:
		return []server.Server{
			server.NewStorefrontServer(server.StorefrontServerDI{
				Config:  cfg,
				Logger:  logger,
				Routers: []router.ServerRouter{router.NewStorefrontRouter(middlewareTransport, handlerTransport)},
			}),
			server.NewMetricsServer(cfg, logger),
		}
	}
}

func printAdminToken(cfg *config.Config) {
	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken()
	if err != nil {
		log.Fatalf("failed to create admin token: %v", err)
	}
	fmt.Println(token)
}
