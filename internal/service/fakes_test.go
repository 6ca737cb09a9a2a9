package service

import (
	"context"

	"github.com/Orlando-rp/barbersmart-gateway/internal/domain"
	"github.com/Orlando-rp/barbersmart-gateway/internal/provider"
	"github.com/Orlando-rp/barbersmart-gateway/internal/queue"
)

type fakeConfigStore struct {
	globalFn func(ctx context.Context) (*domain.GlobalConfig, error)
	tenantFn func(ctx context.Context, tenantID string) (*domain.TenantConfig, error)

	globalCalls int
	tenantCalls int
}

func (s *fakeConfigStore) GlobalConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	s.globalCalls++
	if s.globalFn == nil {
		return nil, nil
	}
	return s.globalFn(ctx)
}

func (s *fakeConfigStore) TenantConfig(ctx context.Context, tenantID string) (*domain.TenantConfig, error) {
	s.tenantCalls++
	if s.tenantFn == nil {
		return nil, nil
	}
	return s.tenantFn(ctx, tenantID)
}

type fakeProviderAPI struct {
	connectionStateFn func(ctx context.Context, endpoint, credential, instance string) domain.HealthVerdict
	fetchInstancesFn  func(ctx context.Context, endpoint, credential string) []domain.InstanceInfo
	sendTextFn        func(ctx context.Context, endpoint, credential, instance, number, text string) (*provider.SendResult, error)

	probeCalls int
	fetchCalls int
	sendCalls  int
}

func (a *fakeProviderAPI) ConnectionState(ctx context.Context, endpoint, credential, instance string) domain.HealthVerdict {
	a.probeCalls++
	if a.connectionStateFn == nil {
		return domain.HealthVerdict{State: domain.StateError}
	}
	return a.connectionStateFn(ctx, endpoint, credential, instance)
}

func (a *fakeProviderAPI) FetchInstances(ctx context.Context, endpoint, credential string) []domain.InstanceInfo {
	a.fetchCalls++
	if a.fetchInstancesFn == nil {
		return nil
	}
	return a.fetchInstancesFn(ctx, endpoint, credential)
}

func (a *fakeProviderAPI) SendText(ctx context.Context, endpoint, credential, instance, number, text string) (*provider.SendResult, error) {
	a.sendCalls++
	if a.sendTextFn == nil {
		return &provider.SendResult{StatusCode: 200}, nil
	}
	return a.sendTextFn(ctx, endpoint, credential, instance, number, text)
}

type fakeDeliveryLog struct {
	insertFn func(ctx context.Context, record *domain.DeliveryRecord) error

	inserted []domain.DeliveryRecord
}

func (l *fakeDeliveryLog) Insert(ctx context.Context, record *domain.DeliveryRecord) error {
	if l.insertFn != nil {
		if err := l.insertFn(ctx, record); err != nil {
			return err
		}
	}
	l.inserted = append(l.inserted, *record)
	return nil
}

func (l *fakeDeliveryLog) ListByTenant(ctx context.Context, tenantID string, page, pageSize int) ([]domain.DeliveryRecord, int64, error) {
	return l.inserted, int64(len(l.inserted)), nil
}

type fakePublisher struct {
	publishFn func(ctx context.Context, event queue.DeliveryEvent) error

	published []queue.DeliveryEvent
}

func (p *fakePublisher) PublishDelivery(ctx context.Context, event queue.DeliveryEvent) error {
	if p.publishFn != nil {
		if err := p.publishFn(ctx, event); err != nil {
			return err
		}
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeRateLimiter struct {
	allowFn func(ctx context.Context, scope string) (bool, error)
}

func (l *fakeRateLimiter) Allow(ctx context.Context, scope string) (bool, error) {
	if l.allowFn == nil {
		return true, nil
	}
	return l.allowFn(ctx, scope)
}
