package domain

import "time"

// DeviceEndpoint is a push delivery address registered by a client device.
// Created through the client API, removed either by the client or by the
// push dispatcher when the gateway reports the token permanently invalid.
type DeviceEndpoint struct {
	TokenID   string    `json:"id" dynamodbav:"token_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Token     string    `json:"token" dynamodbav:"token"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type RegisterDeviceRequest struct {
	Token string `json:"token" validate:"required"`
}
