package create_session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createSession "github.com/dosuclinic/DosuSchedulerService/internal/usecase/create_session"
)

type useCaseStub struct {
	resp *createSession.Response
	err  error
	got  *createSession.Request
}

func (s *useCaseStub) Execute(_ context.Context, req *createSession.Request) (*createSession.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type loggerStub struct{}

func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}

func postSessions(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	stub := &useCaseStub{resp: &createSession.Response{
		ID:        42,
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Room:      1,
		Slot:      3,
		TypeID:    5,
		WorkerID:  7,
		PatientID: 9,
		Price:     50000,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}}
	h := NewHandler(stub, loggerStub{})

	rec := postSessions(t, h, CreateSessionRequest{
		Date: "2025-06-02", Room: 1, Slot: 3, TypeID: 5, PatientID: 9,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, int64(50000), resp.Price)

	require.NotNil(t, stub.got)
	assert.Equal(t, 3, stub.got.Slot)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot conflict", createSession.ErrSlotConflict, http.StatusConflict},
		{"type not found", createSession.ErrTypeNotFound, http.StatusNotFound},
		{"type not available", createSession.ErrTypeNotAvailable, http.StatusBadRequest},
		{"patient not found", createSession.ErrPatientNotFound, http.StatusNotFound},
		{"no worker", createSession.ErrNoWorkerAvailable, http.StatusNotFound},
		{"invalid input", createSession.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createSession.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&useCaseStub{err: tt.err}, loggerStub{})

			rec := postSessions(t, h, CreateSessionRequest{
				Date: "2025-06-02", Room: 1, Slot: 3, TypeID: 5, PatientID: 9,
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_BadDate(t *testing.T) {
	h := NewHandler(&useCaseStub{}, loggerStub{})

	rec := postSessions(t, h, CreateSessionRequest{
		Date: "02.06.2025", Room: 1, Slot: 3, TypeID: 5, PatientID: 9,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownField(t *testing.T) {
	h := NewHandler(&useCaseStub{}, loggerStub{})

	rec := postSessions(t, h, map[string]interface{}{
		"date": "2025-06-02", "room": 1, "slot": 3, "typeId": 5, "patientId": 9,
		"price": 100,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
