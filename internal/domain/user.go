package domain

import "time"

// User is owned by the external profile store; this service only reads it
// to resolve the notification language.
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	LanguageCode string    `json:"language_code,omitempty" dynamodbav:"language_code"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
