package service

import (
	"context"
	"fmt"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"github.com/Orlando-rp/barbersmart-gateway/internal/observability"
	"github.com/Orlando-rp/barbersmart-gateway/internal/provider"
	"github.com/Orlando-rp/barbersmart-gateway/internal/ratelimit"
	"github.com/Orlando-rp/barbersmart-gateway/internal/repository"
	"go.uber.org/zap"
)

// ResolverVersion is surfaced in diagnostics snapshots so operators can tell
// which resolver build produced a given answer.
const ResolverVersion = "1.3.0"

// Gateway composes resolution, dispatch, and fallback into the public send
// surface. At most one fallback hop is attempted per send, which bounds the
// worst case to two provider round-trips; instances that already failed in a
// previous call are not remembered across calls.
type Gateway struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	store      repository.ConfigStore
	api        provider.API
	limiter    ratelimit.RateLimiter
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func NewGateway(
	resolver *Resolver,
	dispatcher *Dispatcher,
	store repository.ConfigStore,
	api provider.API,
	limiter ratelimit.RateLimiter,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*Gateway, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if api == nil {
		return nil, fmt.Errorf("provider api is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		resolver:   resolver,
		dispatcher: dispatcher,
		store:      store,
		api:        api,
		limiter:    limiter,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// SendWithFailover resolves a config for the tenant, dispatches through it,
// and retries exactly once through a fallback instance when the failure was
// instance-class. All failures come back as typed outcomes; no error or
// panic escapes to the caller.
func (g *Gateway) SendWithFailover(ctx context.Context, tenantID, to, body string, logCtx *LogContext) domain.SendOutcome {
	if ctx == nil {
		ctx = context.Background()
	}

	if !g.allowSend(ctx, tenantID) {
		return domain.SendOutcome{
			ErrorClass:   domain.ErrorClassSendFailed,
			ErrorMessage: "rate limit exceeded",
		}
	}

	cfg, err := g.resolver.Resolve(ctx, tenantID, ResolveOptions{RequireConnected: true})
	if err != nil {
		g.logger.Error("config resolution failed",
			zap.String("tenantId", tenantID),
			zap.Error(err),
		)
		cfg = nil
	}

	if cfg == nil {
		fallback, err := g.resolver.FindFallback(ctx, "")
		if err != nil {
			g.logger.Error("fallback lookup failed", zap.Error(err))
			fallback = nil
		}
		if fallback == nil {
			return domain.SendOutcome{
				ErrorClass:   domain.ErrorClassNoConfig,
				ErrorMessage: "no messaging gateway configuration available",
			}
		}
		return g.dispatcher.Dispatch(ctx, *fallback, to, body, logCtx)
	}

	outcome := g.dispatcher.Dispatch(ctx, *cfg, to, body, logCtx)
	if outcome.ErrorClass != domain.ErrorClassInstance {
		return outcome
	}

	fallback, err := g.resolver.FindFallback(ctx, cfg.InstanceName)
	if err != nil {
		g.logger.Error("fallback lookup failed",
			zap.String("excluded", cfg.InstanceName),
			zap.Error(err),
		)
		fallback = nil
	}
	if fallback == nil {
		g.metrics.IncFailover("exhausted")
		return outcome
	}

	g.logger.Info("retrying send through fallback instance",
		zap.String("failed", cfg.InstanceName),
		zap.String("fallback", fallback.InstanceName),
	)

	second := g.dispatcher.Dispatch(ctx, *fallback, to, body, logCtx)
	if second.Success {
		g.metrics.IncFailover("recovered")
	} else {
		g.metrics.IncFailover("failed")
	}
	return second
}

func (g *Gateway) allowSend(ctx context.Context, tenantID string) bool {
	if g.limiter == nil {
		return true
	}

	allowed, err := g.limiter.Allow(ctx, tenantID)
	if err != nil {
		// Fail open: a limiter outage must not block notifications.
		g.logger.Warn("rate limiter unavailable, allowing send", zap.Error(err))
		return true
	}
	if !allowed {
		g.logger.Warn("send rejected by rate limit", zap.String("tenantId", tenantID))
	}
	return allowed
}
