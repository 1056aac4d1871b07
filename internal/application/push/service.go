// Package push fans one notification out to all registered device endpoints
// of a user. Delivery is best-effort: the persisted notification record is
// the durable channel, so nothing here ever propagates an error to the
// caller.
package push

import (
	"context"

	"github.com/go-room-notify/internal/domain"
	"github.com/go-room-notify/internal/infrastructure/sns"
	"github.com/sirupsen/logrus"
)

// clickAction is the client-routing hint carried in every push payload.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// Outcome is the non-propagating delivery result. Callers may log it but
// never branch their own persistence on it.
type Outcome string

const (
	OutcomeDelivered   Outcome = "delivered"
	OutcomeNoEndpoints Outcome = "no_endpoints"
	OutcomeFailed      Outcome = "failed"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, userID, title, body, pushType string) Outcome
}

type deviceStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.DeviceEndpoint, error)
	Delete(ctx context.Context, tokenID string) error
}

type dispatcher struct {
	devices deviceStore
	gateway sns.PushGateway
	log     *logrus.Logger
}

func NewDispatcher(devices deviceStore, gateway sns.PushGateway, log *logrus.Logger) Dispatcher {
	return &dispatcher{devices: devices, gateway: gateway, log: log}
}

// Dispatch sends one multicast to every endpoint of the user and prunes
// endpoints the gateway reports permanently invalid. No endpoints is a
// no-op success without a gateway call.
func (d *dispatcher) Dispatch(ctx context.Context, userID, title, body, pushType string) Outcome {
	endpoints, err := d.devices.ListByUser(ctx, userID)
	if err != nil {
		d.log.WithError(err).WithField("user_id", userID).Error("push: list endpoints")
		return OutcomeFailed
	}
	if len(endpoints) == 0 {
		return OutcomeNoEndpoints
	}

	// Results come back one per token in input order, so position, not the
	// token value, identifies the endpoint. Duplicate registrations of the
	// same token stay distinguishable that way.
	tokenIDs := make([]string, 0, len(endpoints))
	tokens := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		tokenIDs = append(tokenIDs, e.TokenID)
		tokens = append(tokens, e.Token)
	}

	results, err := d.gateway.SendMulticast(ctx, sns.Message{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data: map[string]string{
			"click_action": clickAction,
			"type":         pushType,
		},
	})
	if err != nil {
		d.log.WithError(err).WithField("user_id", userID).Error("push: multicast failed")
		return OutcomeFailed
	}

	delivered := false
	for i, res := range results {
		switch {
		case res.Err == nil:
			delivered = true
		case res.Invalid:
			if err := d.devices.Delete(ctx, tokenIDs[i]); err != nil {
				d.log.WithError(err).WithField("user_id", userID).Warn("push: prune stale endpoint")
			}
		default:
			d.log.WithError(res.Err).WithField("user_id", userID).Debug("push: token delivery failed")
		}
	}
	if !delivered {
		return OutcomeFailed
	}
	return OutcomeDelivered
}
