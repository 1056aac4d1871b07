// Package sweep holds the four time-driven scans over bookings. The first
// three emit reminder notifications with one-shot dedup flags; the fourth
// auto-completes finished bookings and deliberately emits nothing, leaving
// the completed notification to the status-transition handler so every
// notification is single-sourced from a status change.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-room-notify/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	upcomingHorizon = 30 * time.Minute
	startingHorizon = 5 * time.Minute
	endingNear      = 10 * time.Minute
	endingFar       = 15 * time.Minute
)

// Window is a half-open time interval (From, To] on a booking time field.
type Window struct {
	From time.Time
	To   time.Time
}

// Overlaps reports whether two windows share any instant.
func (w Window) Overlaps(o Window) bool {
	return w.From.Before(o.To) && o.From.Before(w.To)
}

// UpcomingWindow is (now, now+30m] on start time.
func UpcomingWindow(now time.Time) Window {
	return Window{From: now, To: now.Add(upcomingHorizon)}
}

// StartingWindow is (now, now+5m] on start time.
func StartingWindow(now time.Time) Window {
	return Window{From: now, To: now.Add(startingHorizon)}
}

// EndingWindow is (now+10m, now+15m] on end time.
func EndingWindow(now time.Time) Window {
	return Window{From: now.Add(endingNear), To: now.Add(endingFar)}
}

type Service interface {
	NotifyUpcoming(ctx context.Context, now time.Time) error
	NotifyStarting(ctx context.Context, now time.Time) error
	NotifyEnding(ctx context.Context, now time.Time) error
	AutoComplete(ctx context.Context, now time.Time) error
}

type bookingStore interface {
	ListApprovedByStartWindow(ctx context.Context, from, to time.Time, flag domain.ReminderFlag) ([]domain.Booking, error)
	ListApprovedByEndWindow(ctx context.Context, from, to time.Time, flag domain.ReminderFlag) ([]domain.Booking, error)
	ListApprovedEndedBy(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ClaimReminderFlag(ctx context.Context, bookingID string, flag domain.ReminderFlag) error
	CompleteBatch(ctx context.Context, bookingIDs []string) error
}

type notifier interface {
	Deliver(ctx context.Context, userID string, ev domain.Event) error
}

type service struct {
	bookings bookingStore
	notifier notifier
	log      *logrus.Logger
}

func NewService(bookings bookingStore, n notifier, log *logrus.Logger) Service {
	return &service{bookings: bookings, notifier: n, log: log}
}

// NotifyUpcoming reminds users of reservations starting within 30 minutes.
func (s *service) NotifyUpcoming(ctx context.Context, now time.Time) error {
	w := UpcomingWindow(now)
	matches, err := s.bookings.ListApprovedByStartWindow(ctx, w.From, w.To, domain.FlagUpcoming)
	if err != nil {
		return fmt.Errorf("upcoming sweep query: %w", err)
	}
	s.remindAll(ctx, matches, domain.FlagUpcoming, func(b domain.Booking) domain.Event {
		return domain.Event{Kind: domain.KindUpcoming, EntityName: roomName(b), StartTime: b.StartTime}
	})
	return nil
}

// NotifyStarting reminds users of sessions starting within 5 minutes.
func (s *service) NotifyStarting(ctx context.Context, now time.Time) error {
	w := StartingWindow(now)
	matches, err := s.bookings.ListApprovedByStartWindow(ctx, w.From, w.To, domain.FlagStarting)
	if err != nil {
		return fmt.Errorf("starting sweep query: %w", err)
	}
	s.remindAll(ctx, matches, domain.FlagStarting, func(b domain.Booking) domain.Event {
		return domain.Event{Kind: domain.KindSessionStarting, EntityName: roomName(b)}
	})
	return nil
}

// NotifyEnding warns users of sessions ending in 10 to 15 minutes.
func (s *service) NotifyEnding(ctx context.Context, now time.Time) error {
	w := EndingWindow(now)
	matches, err := s.bookings.ListApprovedByEndWindow(ctx, w.From, w.To, domain.FlagEnding)
	if err != nil {
		return fmt.Errorf("ending sweep query: %w", err)
	}
	s.remindAll(ctx, matches, domain.FlagEnding, func(b domain.Booking) domain.Event {
		return domain.Event{Kind: domain.KindSessionEnding, EntityName: roomName(b)}
	})
	return nil
}

// remindAll runs the per-booking idempotency protocol: claim the one-shot
// flag, then record, then push, strictly in that order. A crash after the
// claim loses at most one notification; it can never duplicate one. A
// failed claim means another sweep run got there first, so the booking is
// silently skipped.
func (s *service) remindAll(ctx context.Context, matches []domain.Booking, flag domain.ReminderFlag, event func(domain.Booking) domain.Event) {
	for _, b := range matches {
		if err := s.bookings.ClaimReminderFlag(ctx, b.BookingID, flag); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.log.WithField("booking_id", b.BookingID).Debugf("sweep: %s already claimed", flag)
				continue
			}
			s.log.WithError(err).WithField("booking_id", b.BookingID).Errorf("sweep: claim %s", flag)
			continue
		}
		if err := s.notifier.Deliver(ctx, b.UserID, event(b)); err != nil {
			// The flag is already set; the reminder is lost rather than
			// ever sent twice.
			s.log.WithError(err).WithField("booking_id", b.BookingID).Errorf("sweep: deliver after claiming %s", flag)
		}
	}
}

// AutoComplete moves every approved booking whose end time has passed to
// "completed" in one atomic batch. No notification is emitted here; the
// status transition handler reacts to the resulting mutation.
func (s *service) AutoComplete(ctx context.Context, now time.Time) error {
	matches, err := s.bookings.ListApprovedEndedBy(ctx, now)
	if err != nil {
		return fmt.Errorf("auto-complete sweep query: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, b := range matches {
		ids = append(ids, b.BookingID)
	}
	if err := s.bookings.CompleteBatch(ctx, ids); err != nil {
		return err
	}
	s.log.WithField("count", len(ids)).Info("sweep: auto-completed bookings")
	return nil
}

func roomName(b domain.Booking) string {
	if b.RoomName == "" {
		return "Room"
	}
	return b.RoomName
}
