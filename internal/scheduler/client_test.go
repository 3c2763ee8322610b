package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wutsk/labreserve/internal/domain"
)

func TestClient_Schedule(t *testing.T) {
	var received JobRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int64{"job_id": 42})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	runAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	jobID, err := client.Schedule(context.Background(), JobRequest{
		StationID: "s5",
		RunAt:     runAt,
		Selector:  "deb12 net",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), jobID)
	assert.Equal(t, "s5", received.StationID)
	assert.Equal(t, "deb12 net", received.Selector)
	assert.True(t, received.RunAt.Equal(runAt))
}

func TestClient_Schedule_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "timestamp in the past", http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	_, err := client.Schedule(context.Background(), JobRequest{StationID: "s5"})

	var schedulingErr *domain.SchedulingError
	assert.ErrorAs(t, err, &schedulingErr)
	assert.Equal(t, "create", schedulingErr.Op)
}

func TestClient_Schedule_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.Schedule(context.Background(), JobRequest{StationID: "s5"})

	var schedulingErr *domain.SchedulingError
	assert.ErrorAs(t, err, &schedulingErr)
}

func TestClient_Cancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/jobs/42", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	removed, err := client.Cancel(context.Background(), 42)

	assert.NoError(t, err)
	assert.True(t, removed)
}

func TestClient_Cancel_NotFoundIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	removed, err := client.Cancel(context.Background(), 42)

	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestClient_Cancel_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)

	_, err := client.Cancel(context.Background(), 42)

	var schedulingErr *domain.SchedulingError
	assert.ErrorAs(t, err, &schedulingErr)
	assert.Equal(t, "cancel", schedulingErr.Op)
}
