package domain

import "time"

// Booking statuses. Approval logic lives outside this service; "completed"
// is the only status this service ever writes (auto-complete sweep).
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingDeclined  = "declined"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// ReminderFlag names a one-shot dedup flag on a booking. The value is the
// stored attribute name so repos can use it directly in update expressions.
type ReminderFlag string

const (
	FlagUpcoming ReminderFlag = "upcoming_notif_sent"
	FlagStarting ReminderFlag = "start_notif_sent"
	FlagEnding   ReminderFlag = "end_notif_sent"
)

// Booking is a room reservation. The three one-shot flags transition
// false→true exactly once and are never reset; they exist solely to make
// the repeated sweep scans idempotent. StartTime and EndTime must be
// whole-second UTC values: the time-keyed GSIs compare their stored
// strings, and fractional seconds break that ordering.
type Booking struct {
	BookingID         string    `json:"id" dynamodbav:"booking_id"`
	UserID            string    `json:"user_id" dynamodbav:"user_id"`
	RoomName          string    `json:"room_name" dynamodbav:"room_name"`
	Status            string    `json:"status" dynamodbav:"status"`
	StartTime         time.Time `json:"start_time" dynamodbav:"start_time"`
	EndTime           time.Time `json:"end_time" dynamodbav:"end_time"`
	UpcomingNotifSent bool      `json:"upcoming_notif_sent" dynamodbav:"upcoming_notif_sent"`
	StartNotifSent    bool      `json:"start_notif_sent" dynamodbav:"start_notif_sent"`
	EndNotifSent      bool      `json:"end_notif_sent" dynamodbav:"end_notif_sent"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}
