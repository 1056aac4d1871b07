package domain

import "time"

// Notification is the persisted per-user notification record. Append-only:
// this service never mutates one after creation; only the client flips Read.
type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Body           string    `json:"body" dynamodbav:"body"`
	TitleKey       string    `json:"title_key" dynamodbav:"title_key"`
	BodyKey        string    `json:"body_key" dynamodbav:"body_key"`
	Type           string    `json:"type" dynamodbav:"type"`
	Read           bool      `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
}
