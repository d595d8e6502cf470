package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/godilite/helpdesk-portal/internal/config"
	handler "github.com/godilite/helpdesk-portal/internal/grpc"
	"github.com/godilite/helpdesk-portal/internal/normalize"
	"github.com/godilite/helpdesk-portal/internal/service"
	"github.com/godilite/helpdesk-portal/internal/store"
	"github.com/godilite/helpdesk-portal/internal/transport"
	"github.com/godilite/helpdesk-portal/pkg/cache"
	grpcsrv "github.com/godilite/helpdesk-portal/pkg/grpc/server"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	cache      *cache.Cache
	crm        *transport.Client
	grpcServer *grpcsrv.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithKeyPrefix(cfg.RedisKeyPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	limiter := rate.NewLimiter(rate.Every(cfg.CRMRateInterval), 1)
	crm := transport.New(cfg.CRMBaseURL,
		transport.WithToken(cfg.CRMAPIToken),
		transport.WithTimeout(cfg.CRMTimeout),
		transport.WithRetryCount(cfg.CRMRetryCount),
		transport.WithLimiter(limiter),
		transport.WithLogger(logger),
	)
	if err := crm.Ping(ctx); err != nil {
		logger.Warn("CRM not reachable at startup", zap.String("url", cfg.CRMBaseURL), zap.Error(err))
	} else {
		logger.Info("CRM client initialized", zap.String("url", cfg.CRMBaseURL))
	}

	helpdesk := service.NewHelpdeskService(crm, normalize.New(logger), store.New(), logger)

	grpcHandlers := handler.NewGRPCHandlers(helpdesk, cacheClient, logger, cfg.CacheTTL,
		handler.WithDefaultPageSize(cfg.DefaultPageSize))

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	)
	if err != nil {
		_ = cacheClient.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
		handler.RegisterHelpdeskServer(s, grpcHandlers)
	})

	return &App{
		logger:     logger,
		cache:      cacheClient,
		crm:        crm,
		grpcServer: grpcServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Warn("shutdown completed but deadline exceeded", zap.Error(err))
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}

	_ = a.logger.Sync()
	return nil
}
