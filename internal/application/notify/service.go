// Package notify is the point every notification path converges on:
// resolve the user's language, render the localized message, persist the
// notification record, then hand off to the push dispatcher.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-room-notify/internal/application/push"
	"github.com/go-room-notify/internal/domain"
	"github.com/go-room-notify/internal/i18n"
	"github.com/go-room-notify/internal/pkg/id"
	"github.com/sirupsen/logrus"
)

type Service interface {
	// Language resolves the user's language preference, degrading to the
	// default when the user or the field is missing or the profile store
	// errors. It never fails.
	Language(ctx context.Context, userID string) string
	// Deliver records the notification and dispatches push for it. The
	// record write is the only failure that propagates; push is
	// best-effort.
	Deliver(ctx context.Context, userID string, ev domain.Event) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type service struct {
	users         userStore
	notifications notificationStore
	dispatcher    push.Dispatcher
	defaultLang   string
	log           *logrus.Logger
}

func NewService(users userStore, notifications notificationStore, dispatcher push.Dispatcher, defaultLang string, log *logrus.Logger) Service {
	if defaultLang == "" {
		defaultLang = i18n.BaseLanguage
	}
	return &service{
		users:         users,
		notifications: notifications,
		dispatcher:    dispatcher,
		defaultLang:   defaultLang,
		log:           log,
	}
}

func (s *service) Language(ctx context.Context, userID string) string {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Debug("notify: language lookup degraded to default")
		return s.defaultLang
	}
	if u.LanguageCode == "" {
		return s.defaultLang
	}
	return u.LanguageCode
}

func (s *service) Deliver(ctx context.Context, userID string, ev domain.Event) error {
	lang := s.Language(ctx, userID)
	msg := i18n.Resolve(lang, ev)

	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		Title:          msg.Title,
		Body:           msg.Body,
		TitleKey:       ev.Kind.TitleKey(),
		BodyKey:        ev.Kind.BodyKey(),
		Type:           ev.Kind.RecordType(),
		Read:           false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifications.Put(ctx, n); err != nil {
		return fmt.Errorf("record %s notification for user %s: %w", ev.Kind, userID, err)
	}

	outcome := s.dispatcher.Dispatch(ctx, userID, msg.Title, msg.Body, ev.Kind.PushType())
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"kind":    ev.Kind,
		"push":    outcome,
	}).Debug("notify: delivered")
	return nil
}
