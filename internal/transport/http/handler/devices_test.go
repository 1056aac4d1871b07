package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-room-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDeviceSvc struct{ mock.Mock }

func (m *mockDeviceSvc) List(ctx context.Context, userID string) ([]domain.DeviceEndpoint, error) {
	args := m.Called(ctx, userID)
	if d, _ := args.Get(0).([]domain.DeviceEndpoint); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeviceSvc) Register(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.DeviceEndpoint, error) {
	args := m.Called(ctx, userID, req)
	if d, _ := args.Get(0).(*domain.DeviceEndpoint); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDeviceSvc) Delete(ctx context.Context, tokenID, userID string) error {
	return m.Called(ctx, tokenID, userID).Error(0)
}

// --- Register tests ---

func TestRegisterDevice_MissingClaims(t *testing.T) {
	svc := &mockDeviceSvc{}
	h := NewDeviceHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/devices", nil)
	rr := httptest.NewRecorder()
	h.Register(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegisterDevice_InvalidBody(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	h := NewDeviceHandler(svc)

	r := bearerReq(t, p, http.MethodPost, "/v1/devices", "u1", []byte("not-json"))
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Register), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterDevice_MissingToken(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	h := NewDeviceHandler(svc)
	body, _ := json.Marshal(domain.RegisterDeviceRequest{})

	r := bearerReq(t, p, http.MethodPost, "/v1/devices", "u1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Register), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDevice_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	req := domain.RegisterDeviceRequest{Token: "fcm-token-abc"}
	svc.On("Register", mock.Anything, "u1", req).
		Return(&domain.DeviceEndpoint{TokenID: "t1", UserID: "u1", Token: "fcm-token-abc"}, nil)
	h := NewDeviceHandler(svc)
	body, _ := json.Marshal(req)

	r := bearerReq(t, p, http.MethodPost, "/v1/devices", "u1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Register), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp domain.DeviceEndpoint
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "t1", resp.TokenID)
	svc.AssertExpectations(t)
}

// --- List tests ---

func TestListDevices_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	svc.On("List", mock.Anything, "u1").Return([]domain.DeviceEndpoint{
		{TokenID: "t1", UserID: "u1", Token: "tok1"},
	}, nil)
	h := NewDeviceHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/devices", "u1", nil)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.DeviceEndpoint
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	svc.AssertExpectations(t)
}

// --- Delete tests ---

func TestDeleteDevice_NotOwner_Forbidden(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	svc.On("Delete", mock.Anything, "t1", "u2").Return(domain.ErrForbidden)
	h := NewDeviceHandler(svc)

	r := withChiID(bearerReq(t, p, http.MethodDelete, "/v1/devices/t1", "u2", nil), "t1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Delete), rr, r)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDeleteDevice_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockDeviceSvc{}
	svc.On("Delete", mock.Anything, "t1", "u1").Return(nil)
	h := NewDeviceHandler(svc)

	r := withChiID(bearerReq(t, p, http.MethodDelete, "/v1/devices/t1", "u1", nil), "t1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Delete), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
