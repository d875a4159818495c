package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/jadwal-api/internal/service"
	"github.com/akademix/jadwal-api/pkg/response"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.SchedulingService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scheduling := service.NewSchedulingService(service.SchedulingServiceParams{})
	rooms := NewRoomHandler(scheduling)
	schedules := NewScheduleHandler(scheduling)
	conflicts := NewConflictHandler(scheduling)
	observers := NewObserverHandler(scheduling, nil, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/rooms", rooms.Create)
	api.GET("/rooms", rooms.List)
	api.GET("/rooms/:roomId", rooms.Get)
	api.POST("/schedules", schedules.Create)
	api.GET("/schedules", schedules.List)
	api.GET("/schedules/:scheduleId", schedules.Get)
	api.PUT("/schedules/:scheduleId", schedules.Update)
	api.DELETE("/schedules/:scheduleId", schedules.Delete)
	api.GET("/schedules/:scheduleId/conflicts", conflicts.ForSchedule)
	api.GET("/conflicts", conflicts.List)
	api.GET("/conflicts/summary", conflicts.Summary)
	api.POST("/observers", observers.Register)
	api.GET("/observers", observers.List)
	api.DELETE("/observers/:observerId", observers.Unregister)
	return r, scheduling
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func addRoomHTTP(t *testing.T, r *gin.Engine, id string, capacity int) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/rooms", gin.H{
		"room_id":   id,
		"room_name": "Room " + id,
		"capacity":  capacity,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func schedulePayload(id, lecturer, roomID string) gin.H {
	return gin.H{
		"schedule_id":   id,
		"course_name":   "Course " + id,
		"course_code":   "CS" + id,
		"lecturer_name": lecturer,
		"day":           "MONDAY",
		"start_time":    "08:00",
		"end_time":      "10:00",
		"room_id":       roomID,
		"num_students":  20,
	}
}

func TestRoomEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	addRoomHTTP(t, r, "R101", 40)

	// Duplicate registration conflicts.
	w := doJSON(t, r, http.MethodPost, "/api/v1/rooms", gin.H{
		"room_id": "R101", "room_name": "Again", "capacity": 10,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/rooms/R101", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	room, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Main Building", room["building"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/rooms/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/rooms", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	addRoomHTTP(t, r, "R101", 40)

	w := doJSON(t, r, http.MethodPost, "/api/v1/schedules", schedulePayload("S1", "Dr. Sari", "R101"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/schedules", schedulePayload("S2", "Dr. Budi", "R101"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	conflicts, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, conflicts, 1)

	w = doJSON(t, r, http.MethodGet, "/api/v1/conflicts/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	summary, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), summary["total_conflicts"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/schedules/S1/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Moving S2 to the afternoon clears the conflict.
	payload := schedulePayload("S2", "Dr. Budi", "R101")
	delete(payload, "schedule_id")
	payload["start_time"] = "13:00"
	payload["end_time"] = "15:00"
	w = doJSON(t, r, http.MethodPut, "/api/v1/schedules/S2", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/conflicts", nil)
	envelope = decodeEnvelope(t, w)
	conflicts, _ = envelope.Data.([]any)
	assert.Empty(t, conflicts)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/schedules/S2", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/schedules/S2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/schedules/S2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleValidationOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	addRoomHTTP(t, r, "R101", 10)

	payload := schedulePayload("S1", "Dr. Sari", "R101")
	payload["num_students"] = 11
	w := doJSON(t, r, http.MethodPost, "/api/v1/schedules", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = schedulePayload("S1", "Dr. Sari", "R999")
	w = doJSON(t, r, http.MethodPost, "/api/v1/schedules", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)

	payload = schedulePayload("S1", "Dr. Sari", "R101")
	payload["day"] = "SOMEDAY"
	w = doJSON(t, r, http.MethodPost, "/api/v1/schedules", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleFiltersOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	addRoomHTTP(t, r, "R101", 40)
	addRoomHTTP(t, r, "R102", 40)

	w := doJSON(t, r, http.MethodPost, "/api/v1/schedules", schedulePayload("S1", "Dr. Sari", "R101"))
	require.Equal(t, http.StatusCreated, w.Code)

	payload := schedulePayload("S2", "Dr. Budi", "R102")
	payload["day"] = "TUESDAY"
	w = doJSON(t, r, http.MethodPost, "/api/v1/schedules", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	cases := []struct {
		query  string
		wantID string
	}{
		{"lecturer=dr.%20sari", "S1"},
		{"room=R102", "S2"},
		{"day=tuesday", "S2"},
	}
	for _, tc := range cases {
		w = doJSON(t, r, http.MethodGet, "/api/v1/schedules?"+tc.query, nil)
		require.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(t, w)
		items, ok := envelope.Data.([]any)
		require.True(t, ok)
		require.Len(t, items, 1, tc.query)
		item := items[0].(map[string]any)
		assert.Equal(t, tc.wantID, item["schedule_id"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/schedules?day=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObserverEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/observers", gin.H{
		"role": "lecturer", "name": "Dr. Sari", "email": "sari@example.ac.id",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	envelope := decodeEnvelope(t, w)
	registration, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	observerID, _ := registration["observer_id"].(string)
	require.NotEmpty(t, observerID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/observers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	list, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/observers/%s", observerID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/observers/%s", observerID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown role is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/observers", gin.H{
		"role": "janitor", "name": "Pak Joko", "email": "joko@example.ac.id",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
