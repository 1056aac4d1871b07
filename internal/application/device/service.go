// Package device manages the push token registry for the client API. The
// push dispatcher prunes these independently when the gateway rejects one.
package device

import (
	"context"
	"fmt"
	"time"

	"github.com/go-room-notify/internal/domain"
	"github.com/go-room-notify/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.DeviceEndpoint, error)
	Register(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.DeviceEndpoint, error)
	Delete(ctx context.Context, tokenID, userID string) error
}

type deviceStore interface {
	Put(ctx context.Context, d *domain.DeviceEndpoint) error
	Get(ctx context.Context, tokenID string) (*domain.DeviceEndpoint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DeviceEndpoint, error)
	Delete(ctx context.Context, tokenID string) error
}

type service struct {
	repo deviceStore
}

func NewService(repo deviceStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.DeviceEndpoint, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Register stores a delivery token. Re-registering an already known token is
// allowed and yields a second endpoint; the gateway-driven pruning removes
// whichever copy goes stale.
func (s *service) Register(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.DeviceEndpoint, error) {
	d := &domain.DeviceEndpoint{
		TokenID:   id.New(),
		UserID:    userID,
		Token:     req.Token,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, tokenID, userID string) error {
	d, err := s.repo.Get(ctx, tokenID)
	if err != nil {
		return err
	}
	if d.UserID != userID {
		return fmt.Errorf("device endpoint %s: %w", tokenID, domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, tokenID)
}
