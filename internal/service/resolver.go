package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"github.com/Orlando-rp/barbersmart-gateway/internal/observability"
	"github.com/Orlando-rp/barbersmart-gateway/internal/provider"
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"go.uber.org/zap"
)

// ResolveOptions controls how far resolution goes before accepting a config.
type ResolveOptions struct {
	// RequireConnected gates each tier behind a live health probe.
	RequireConnected bool
	// SkipHealthCheck suppresses probing even when RequireConnected is set.
	SkipHealthCheck bool
}

// Resolver decides which provider instance and credentials to use for a
// tenant, applying tenant-first-then-global precedence. It holds no state
// between calls; configuration is re-read from the store every time.
type Resolver struct {
	store   repository.ConfigStore
	api     provider.API
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewResolver(
	store repository.ConfigStore,
	api provider.API,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if api == nil {
		return nil, fmt.Errorf("provider api is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		store:   store,
		api:     api,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Resolve returns the config to send through, or nil when nothing is
// resolvable. Tenant tier is attempted first when tenantID is given; an
// unhealthy tenant instance falls through to the global tier silently, so a
// stale tenant connection never blocks notifications.
func (r *Resolver) Resolve(ctx context.Context, tenantID string, opts ResolveOptions) (*domain.ResolvedConfig, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// GlobalConfig is loaded at most once per call, and only when a tier
	// actually needs it.
	var global *domain.GlobalConfig
	globalLoaded := false
	loadGlobal := func() (*domain.GlobalConfig, error) {
		if globalLoaded {
			return global, nil
		}
		loaded, err := r.store.GlobalConfig(ctx)
		if err != nil {
			return nil, err
		}
		global = loaded
		globalLoaded = true
		return global, nil
	}

	if tenantID != "" {
		cfg, err := r.resolveTenantTier(ctx, tenantID, opts, loadGlobal)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}

	global, err := loadGlobal()
	if err != nil {
		return nil, err
	}
	if global == nil || global.EndpointURL == "" || global.CredentialKey == "" {
		return nil, nil
	}
	if global.DefaultInstance == "" {
		return nil, nil
	}

	cfg := &domain.ResolvedConfig{
		EndpointURL:   global.EndpointURL,
		CredentialKey: global.CredentialKey,
		InstanceName:  global.DefaultInstance,
		SourceTier:    domain.SourceTierGlobal,
	}

	if opts.RequireConnected && !opts.SkipHealthCheck {
		if verdict := r.probe(ctx, cfg); !verdict.Connected {
			r.logger.Warn("global instance not connected",
				zap.String("instance", cfg.InstanceName),
				zap.String("state", verdict.State),
			)
			return nil, nil
		}
	}

	return cfg, nil
}

func (r *Resolver) resolveTenantTier(
	ctx context.Context,
	tenantID string,
	opts ResolveOptions,
	loadGlobal func() (*domain.GlobalConfig, error),
) (*domain.ResolvedConfig, error) {
	tenant, err := r.store.TenantConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.IsActive || tenant.InstanceName == "" {
		return nil, nil
	}

	endpoint := tenant.EndpointURL
	credential := tenant.CredentialKey

	// Endpoint and credential inherit field-by-field from the global config.
	if endpoint == "" || credential == "" {
		global, err := loadGlobal()
		if err != nil {
			return nil, err
		}
		if global != nil {
			if endpoint == "" {
				endpoint = global.EndpointURL
			}
			if credential == "" {
				credential = global.CredentialKey
			}
		}
	}

	cfg := &domain.ResolvedConfig{
		EndpointURL:   endpoint,
		CredentialKey: credential,
		InstanceName:  tenant.InstanceName,
		SourceTier:    domain.SourceTierTenant,
		TenantID:      tenantID,
	}
	if !cfg.Complete() {
		return nil, nil
	}

	if !opts.RequireConnected || opts.SkipHealthCheck {
		return cfg, nil
	}

	verdict := r.probe(ctx, cfg)
	if verdict.Connected {
		return cfg, nil
	}

	// Provisionally unusable, not fatal: the global tier gets its turn.
	r.logger.Warn("tenant instance not connected, falling through to global tier",
		zap.String("tenantId", tenantID),
		zap.String("instance", cfg.InstanceName),
		zap.String("state", verdict.State),
	)
	return nil, nil
}

// FindFallback scans the whole instance inventory for any healthy instance
// other than the excluded one. Best effort: configuration or enumeration
// failures yield no fallback rather than an error surfaced to the send path.
func (r *Resolver) FindFallback(ctx context.Context, exclude string) (*domain.ResolvedConfig, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	global, err := r.store.GlobalConfig(ctx)
	if err != nil {
		return nil, err
	}
	if global == nil || global.EndpointURL == "" || global.CredentialKey == "" {
		return nil, nil
	}

	start := time.Now()
	instances := r.api.FetchInstances(ctx, global.EndpointURL, global.CredentialKey)
	r.metrics.ObserveProviderRequest("fetch_instances", time.Since(start))

	for _, instance := range instances {
		if instance.Name == "" || instance.Name == exclude {
			continue
		}
		if !instance.IsOpen() {
			continue
		}

		return &domain.ResolvedConfig{
			EndpointURL:   global.EndpointURL,
			CredentialKey: global.CredentialKey,
			InstanceName:  instance.Name,
			SourceTier:    domain.SourceTierGlobal,
		}, nil
	}

	return nil, nil
}

func (r *Resolver) probe(ctx context.Context, cfg *domain.ResolvedConfig) domain.HealthVerdict {
	start := time.Now()
	verdict := r.api.ConnectionState(ctx, cfg.EndpointURL, cfg.CredentialKey, cfg.InstanceName)
	r.metrics.ObserveProviderRequest("connection_state", time.Since(start))

	if verdict.State == domain.StateError || verdict.State == domain.StateNotFound {
		r.metrics.IncProbeFailure()
	}
	return verdict
}
