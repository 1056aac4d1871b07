package i18n

import (
	"testing"
	"time"

	"github.com/go-room-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_TotalOverAllLanguagesAndKinds(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	for lang := range catalog {
		for _, kind := range domain.Kinds {
			msg := Resolve(lang, domain.Event{Kind: kind, EntityName: "Studio A", StartTime: start})
			assert.NotEmpty(t, msg.Title, "%s/%s title", lang, kind)
			assert.NotEmpty(t, msg.Body, "%s/%s body", lang, kind)
			assert.NotContains(t, msg.Body, "%s", "%s/%s left a placeholder unfilled", lang, kind)
			assert.NotContains(t, msg.Body, "%!", "%s/%s interpolation mismatch", lang, kind)
		}
	}
}

func TestResolve_InterpolatesEntityName(t *testing.T) {
	msg := Resolve("en", domain.Event{Kind: domain.KindBookingApproved, EntityName: "Studio A"})
	assert.Equal(t, "Booking Approved!", msg.Title)
	assert.Equal(t, "Your reservation for Studio A is confirmed.", msg.Body)
}

func TestResolve_UpcomingIncludesClockTime(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	msg := Resolve("en", domain.Event{Kind: domain.KindUpcoming, EntityName: "Studio A", StartTime: start})
	assert.Equal(t, "Your reservation for Studio A starts at 09:30.", msg.Body)
}

func TestResolve_UnsupportedLanguageFallsBackToBase(t *testing.T) {
	ev := domain.Event{Kind: domain.KindOrgKicked, EntityName: "Chess Club"}
	require.False(t, Supported("de"))
	assert.Equal(t, Resolve(BaseLanguage, ev), Resolve("de", ev))
}

func TestResolve_JapaneseBookingApproved(t *testing.T) {
	msg := Resolve("ja", domain.Event{Kind: domain.KindBookingApproved, EntityName: "Studio A"})
	assert.Equal(t, "予約承認！", msg.Title)
	assert.Equal(t, "Studio Aの予約が確定しました。", msg.Body)
}

func TestBaseLanguageCoversEveryKind(t *testing.T) {
	base := catalog[BaseLanguage]
	for _, kind := range domain.Kinds {
		_, ok := base[kind]
		require.True(t, ok, "base language missing kind %s", kind)
	}
}
