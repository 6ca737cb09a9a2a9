package service

import (
	"context"
	"time"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DiagnosticsSnapshot is a read-only view of the gateway's configuration and
// live state for operator troubleshooting. Credentials are reduced to
// presence flags and the inventory is stripped to name and state, but
// instance names are still sensitive: do not expose snapshots to untrusted
// callers verbatim.
type DiagnosticsSnapshot struct {
	ResolverVersion string                 `json:"resolverVersion"`
	Global          *GlobalConfigSummary   `json:"global,omitempty"`
	Tenant          *TenantConfigSummary   `json:"tenant,omitempty"`
	Resolved        *ResolvedConfigSummary `json:"resolved,omitempty"`
	Health          *HealthSummary         `json:"health,omitempty"`
	Instances       []InstanceStatus       `json:"instances"`
}

type GlobalConfigSummary struct {
	EndpointURL     string `json:"endpointUrl"`
	HasCredential   bool   `json:"hasCredential"`
	DefaultInstance string `json:"defaultInstance,omitempty"`
}

type TenantConfigSummary struct {
	InstanceName  string `json:"instanceName"`
	EndpointURL   string `json:"endpointUrl,omitempty"`
	HasCredential bool   `json:"hasCredential"`
	IsActive      bool   `json:"isActive"`
}

type ResolvedConfigSummary struct {
	EndpointURL  string            `json:"endpointUrl"`
	InstanceName string            `json:"instanceName"`
	SourceTier   domain.SourceTier `json:"sourceTier"`
	TenantID     string            `json:"tenantId,omitempty"`
}

type HealthSummary struct {
	Connected  bool   `json:"connected"`
	State      string `json:"state"`
	OwnerPhone string `json:"ownerPhone,omitempty"`
}

type InstanceStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// Diagnose assembles the snapshot. The store reads and the inventory
// enumeration are independent and run concurrently; the live probe waits for
// resolution to pick an instance first. Nothing here mutates state.
func (g *Gateway) Diagnose(ctx context.Context, tenantID string) (*DiagnosticsSnapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	snapshot := &DiagnosticsSnapshot{
		ResolverVersion: ResolverVersion,
		Instances:       []InstanceStatus{},
	}

	var (
		global    *domain.GlobalConfig
		tenant    *domain.TenantConfig
		inventory []domain.InstanceInfo
	)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		loaded, err := g.store.GlobalConfig(grpCtx)
		if err != nil {
			return err
		}
		global = loaded
		// Enumeration needs the global credentials, so it chains here
		// rather than running as its own independent read.
		if global != nil && global.EndpointURL != "" && global.CredentialKey != "" {
			start := time.Now()
			inventory = g.api.FetchInstances(grpCtx, global.EndpointURL, global.CredentialKey)
			g.metrics.ObserveProviderRequest("fetch_instances", time.Since(start))
		}
		return nil
	})
	grp.Go(func() error {
		if tenantID == "" {
			return nil
		}
		loaded, err := g.store.TenantConfig(grpCtx, tenantID)
		if err != nil {
			return err
		}
		tenant = loaded
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	if global != nil {
		snapshot.Global = &GlobalConfigSummary{
			EndpointURL:     global.EndpointURL,
			HasCredential:   global.CredentialKey != "",
			DefaultInstance: global.DefaultInstance,
		}
	}
	if tenant != nil {
		snapshot.Tenant = &TenantConfigSummary{
			InstanceName:  tenant.InstanceName,
			EndpointURL:   tenant.EndpointURL,
			HasCredential: tenant.CredentialKey != "",
			IsActive:      tenant.IsActive,
		}
	}
	for _, instance := range inventory {
		snapshot.Instances = append(snapshot.Instances, InstanceStatus{
			Name:  instance.Name,
			State: instance.State,
		})
	}

	resolved, err := g.resolver.Resolve(ctx, tenantID, ResolveOptions{SkipHealthCheck: true})
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return snapshot, nil
	}

	snapshot.Resolved = &ResolvedConfigSummary{
		EndpointURL:  resolved.EndpointURL,
		InstanceName: resolved.InstanceName,
		SourceTier:   resolved.SourceTier,
		TenantID:     resolved.TenantID,
	}

	verdict := g.resolver.probe(ctx, resolved)
	snapshot.Health = &HealthSummary{
		Connected:  verdict.Connected,
		State:      verdict.State,
		OwnerPhone: verdict.OwnerPhone,
	}

	return snapshot, nil
}
