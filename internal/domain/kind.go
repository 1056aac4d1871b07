package domain

import "time"

// Kind is the closed set of notification kinds. Resolver, recorder and
// dispatcher all operate over this one union; adding a kind means adding a
// constant here and a template per language in the i18n catalog.
type Kind string

const (
	KindOrgApproved      Kind = "org_approved"
	KindOrgDeclined      Kind = "org_declined"
	KindOrgKicked        Kind = "org_kicked"
	KindBookingApproved  Kind = "booking_approved"
	KindBookingDeclined  Kind = "booking_declined"
	KindBookingCancelled Kind = "booking_cancelled"
	KindBookingCompleted Kind = "booking_completed"
	KindUpcoming         Kind = "upcoming"
	KindSessionStarting  Kind = "session_starting"
	KindSessionEnding    Kind = "session_ending"
	KindRoomAdded        Kind = "room_added"
)

// Kinds lists every kind, for catalog totality checks.
var Kinds = []Kind{
	KindOrgApproved, KindOrgDeclined, KindOrgKicked,
	KindBookingApproved, KindBookingDeclined, KindBookingCancelled,
	KindBookingCompleted, KindUpcoming, KindSessionStarting,
	KindSessionEnding, KindRoomAdded,
}

// Event is one notification to deliver: a kind plus its interpolation
// parameters. EntityName is the organization or room name; StartTime is only
// set for KindUpcoming.
type Event struct {
	Kind       Kind
	EntityName string
	StartTime  time.Time
}

// kindMeta carries the per-kind constants that are independent of language:
// the stable client-side re-localization keys, the persisted record type tag
// and the push routing type.
type kindMeta struct {
	titleKey   string
	bodyKey    string
	recordType string
	pushType   string
}

var kindMetas = map[Kind]kindMeta{
	KindOrgApproved:      {"notif_org_approved_title", "notif_org_approved_body", "organization", "organization_update"},
	KindOrgDeclined:      {"notif_org_declined_title", "notif_org_declined_body", "organization", "organization_update"},
	KindOrgKicked:        {"notif_org_removed_title", "notif_org_removed_body", "organization", "organization_update"},
	KindBookingApproved:  {"notif_booking_approved_title", "notif_booking_approved_body", "booking", "booking_update"},
	KindBookingDeclined:  {"notif_booking_declined_title", "notif_booking_declined_body", "booking", "booking_update"},
	KindBookingCancelled: {"notif_booking_cancelled_title", "notif_booking_cancelled_body", "booking", "booking_update"},
	KindBookingCompleted: {"notif_booking_completed_title", "notif_booking_completed_body", "booking", "booking_update"},
	KindUpcoming:         {"notif_upcoming_title", "notif_upcoming_body", "booking", "upcoming_booking"},
	KindSessionStarting:  {"notif_session_starting_title", "notif_session_starting_body", "booking", "session_starting"},
	KindSessionEnding:    {"notif_session_ending_title", "notif_session_ending_body", "booking", "session_ending"},
	KindRoomAdded:        {"notif_room_added_title", "notif_room_added_body", "room_added", "new_room_added"},
}

// TitleKey returns the stable machine-readable title key for the kind.
func (k Kind) TitleKey() string { return kindMetas[k].titleKey }

// BodyKey returns the stable machine-readable body key for the kind.
func (k Kind) BodyKey() string { return kindMetas[k].bodyKey }

// RecordType is the type tag persisted on the notification record.
func (k Kind) RecordType() string { return kindMetas[k].recordType }

// PushType is the routing type carried in the push data payload.
func (k Kind) PushType() string { return kindMetas[k].pushType }
