// Package events reacts to document mutations delivered by the trigger
// infrastructure: status transitions on memberships and bookings, and room
// creation broadcasts. Trigger delivery is at-least-once, so every handler
// is guarded to be a no-op on re-delivery of a non-transition.
package events

import (
	"context"
	"fmt"

	"github.com/go-room-notify/internal/domain"
	"github.com/sirupsen/logrus"
)

// membershipKinds maps notify-worthy membership statuses to their kind.
// Any other destination status is a silent no-op.
var membershipKinds = map[string]domain.Kind{
	domain.MembershipApproved: domain.KindOrgApproved,
	domain.MembershipDeclined: domain.KindOrgDeclined,
	domain.MembershipKicked:   domain.KindOrgKicked,
}

// bookingKinds maps notify-worthy booking statuses to their kind.
var bookingKinds = map[string]domain.Kind{
	domain.BookingApproved:  domain.KindBookingApproved,
	domain.BookingDeclined:  domain.KindBookingDeclined,
	domain.BookingCancelled: domain.KindBookingCancelled,
	domain.BookingCompleted: domain.KindBookingCompleted,
}

// fallbackRoomName stands in when a booking carries no room name.
const fallbackRoomName = "Room"

type Service interface {
	MembershipStatusChanged(ctx context.Context, before, after *domain.Membership) error
	BookingStatusChanged(ctx context.Context, before, after *domain.Booking) error
	RoomCreated(ctx context.Context, room *domain.Room) error
}

type notifier interface {
	Deliver(ctx context.Context, userID string, ev domain.Event) error
}

type membershipStore interface {
	ListByStatus(ctx context.Context, status string) ([]domain.Membership, error)
}

type service struct {
	notifier    notifier
	memberships membershipStore
	log         *logrus.Logger
}

func NewService(n notifier, memberships membershipStore, log *logrus.Logger) Service {
	return &service{notifier: n, memberships: memberships, log: log}
}

// MembershipStatusChanged fires on every membership mutation. Edits that do
// not change the status field are silent no-ops, which is what keeps
// re-triggered deliveries from duplicating notifications.
func (s *service) MembershipStatusChanged(ctx context.Context, before, after *domain.Membership) error {
	if before.Status == after.Status {
		return nil
	}
	kind, ok := membershipKinds[after.Status]
	if !ok {
		return nil
	}
	return s.notifier.Deliver(ctx, after.UserID, domain.Event{
		Kind:       kind,
		EntityName: after.OrganizationName,
	})
}

// BookingStatusChanged fires on every booking mutation, with the same
// unchanged-status guard.
func (s *service) BookingStatusChanged(ctx context.Context, before, after *domain.Booking) error {
	if before.Status == after.Status {
		return nil
	}
	kind, ok := bookingKinds[after.Status]
	if !ok {
		return nil
	}
	roomName := after.RoomName
	if roomName == "" {
		roomName = fallbackRoomName
	}
	return s.notifier.Deliver(ctx, after.UserID, domain.Event{
		Kind:       kind,
		EntityName: roomName,
	})
}

// RoomCreated fans a room_added notification out to every member in good
// standing, deduplicated per user. Per-user failures are logged and skipped
// so one bad profile cannot stall the broadcast. There is no idempotency
// flag here: creation is a one-time event, and a duplicate broadcast on an
// infrastructure retry is an accepted risk.
func (s *service) RoomCreated(ctx context.Context, room *domain.Room) error {
	members, err := s.memberships.ListByStatus(ctx, domain.MembershipApproved)
	if err != nil {
		return fmt.Errorf("list approved memberships: %w", err)
	}

	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.UserID]; dup {
			continue
		}
		seen[m.UserID] = struct{}{}

		ev := domain.Event{Kind: domain.KindRoomAdded, EntityName: room.Name}
		if err := s.notifier.Deliver(ctx, m.UserID, ev); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"user_id": m.UserID,
				"room_id": room.RoomID,
			}).Error("broadcast: deliver room_added")
		}
	}
	return nil
}
