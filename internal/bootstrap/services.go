package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/roktoseba/ui-gateway/config"
	"github.com/roktoseba/ui-gateway/internal/adapters/devauth"
	"github.com/roktoseba/ui-gateway/internal/adapters/oidc"
	redisadapters "github.com/roktoseba/ui-gateway/internal/adapters/redis"
	"github.com/roktoseba/ui-gateway/internal/backend"
	"github.com/roktoseba/ui-gateway/internal/imagehost"
	"github.com/roktoseba/ui-gateway/internal/observability/statsd"
	"github.com/roktoseba/ui-gateway/internal/ports"
	"github.com/roktoseba/ui-gateway/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Registry *service.SessionRegistry
	Backend  *backend.Client
	Uploader *imagehost.Client
	Metrics  *statsd.Client
}

// Close tears down the per-session runtimes and the metrics sink.
func (c *ServiceContainer) Close() {
	if c.Registry != nil {
		c.Registry.Close()
	}
	if c.Metrics != nil {
		c.Metrics.Close()
	}
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the application services from loaded configuration and
// connected infrastructure.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	metrics := buildMetrics(cfg.Observability.Metrics, logger)

	backendClient := backend.New(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     logger,
	})

	provider, err := buildIdentityProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("build identity provider: %w", err)
	}

	registry := service.NewSessionRegistry(service.SessionRegistryOptions{
		Directory: backendClient,
		Provider:  provider,
		TokenStores: func(sessionID string) ports.TokenStore {
			return redisadapters.NewTokenStore(deps.RedisClient, sessionID)
		},
		RoleReaders: func(tokens ports.TokenStore) ports.RoleReader {
			return backendClient.Authorized(tokens)
		},
		Logger:  logger,
		Metrics: metrics,
	})

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   redisadapters.NewSessionStore(deps.RedisClient),
		Registry:   registry,
		SessionTTL: cfg.Auth.SessionTTL,
	})

	uploader, err := buildUploader(cfg.ImageHost, logger)
	if err != nil {
		return nil, fmt.Errorf("build image uploader: %w", err)
	}

	return &ServiceContainer{
		Auth:     authSvc,
		Registry: registry,
		Backend:  backendClient,
		Uploader: uploader,
		Metrics:  metrics,
	}, nil
}

// buildIdentityProvider selects the identity provider by auth mode.
//
//nolint:ireturn // the caller only cares about the port.
func buildIdentityProvider(cfg *config.AppConfig) (ports.IdentityProvider, error) {
	if cfg.Auth.Mode == config.AuthModeMock {
		return devauth.NewProvider(devauth.Config{
			Email:     cfg.Auth.DevAuth.Email,
			Name:      cfg.Auth.DevAuth.Name,
			AvatarURL: cfg.Auth.DevAuth.Avatar,
		})
	}
	return oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.Auth.OAuth.ClientID,
		ClientSecret: cfg.Auth.OAuth.ClientSecret,
		RedirectURL:  cfg.Auth.OAuth.RedirectURL,
		Scope:        cfg.Auth.OAuth.Scope,
		DiscoveryURL: cfg.Auth.OAuth.DiscoveryURL,
		LogoutURL:    cfg.Auth.OAuth.LogoutURL,
	})
}

func buildMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  "gateway",
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		disabled, _ := statsd.NewClient(statsd.Config{})
		return disabled
	}
	return client
}

func buildUploader(cfg config.ImageHostConfig, logger *slog.Logger) (*imagehost.Client, error) {
	if !cfg.IsEnabled() {
		logger.Info("image uploads disabled", "reason", "no API key configured")
		return nil, nil
	}
	return imagehost.NewClient(imagehost.Config{
		UploadURL: cfg.UploadURL,
		APIKey:    cfg.APIKey,
	})
}
