package domain

import "time"

// Room is a bookable resource. Creation triggers the broadcast handler.
type Room struct {
	RoomID    string    `json:"id" dynamodbav:"room_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
