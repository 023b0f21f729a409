package prolific_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prolific-tools/prolific-mcp/config"
	"github.com/prolific-tools/prolific-mcp/prolific"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *prolific.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{APIKey: "testkey", BaseURL: server.URL}
	return prolific.NewClient(cfg).WithHTTPClient(server.Client())
}

func Test_CreateStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/studies/", r.URL.Path)
		assert.Equal(t, "Token testkey", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "Demo Study", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123","status":"UNPUBLISHED"}`))
	})

	resp, err := client.CreateStudy(context.Background(), map[string]any{"name": "Demo Study"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","status":"UNPUBLISHED"}`, string(resp))
}

func Test_GetStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/studies/abc123/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"abc123","name":"Demo Study"}`))
	})

	resp, err := client.GetStudy(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","name":"Demo Study"}`, string(resp))
}

func Test_UpdateStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/studies/abc123/", r.URL.Path)

		bs, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"name":"Renamed"}`, string(bs))

		_, _ = w.Write([]byte(`{"id":"abc123","name":"Renamed"}`))
	})

	resp, err := client.UpdateStudy(context.Background(), "abc123", map[string]any{"name": "Renamed"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","name":"Renamed"}`, string(resp))
}

func Test_LaunchStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/studies/abc123/transition/", r.URL.Path)

		bs, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"action":"PUBLISH"}`, string(bs))

		_, _ = w.Write([]byte(`{"id":"abc123","status":"ACTIVE"}`))
	})

	resp, err := client.LaunchStudy(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","status":"ACTIVE"}`, string(resp))
}

func Test_GetSubmissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/studies/abc123/submissions/", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[{"id":"sub1","status":"AWAITING REVIEW"}]}`))
	})

	resp, err := client.GetSubmissions(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"sub1","status":"AWAITING REVIEW"}]`, string(resp))
}

func Test_GetSubmissions_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	resp, err := client.GetSubmissions(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(resp))
}

func Test_GetStudyStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/studies/abc123/", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "abc123",
			"status": "ACTIVE",
			"total_available_places": 50,
			"places_taken": 23,
			"completion_rate": 0.46,
			"name": "Demo Study",
			"internal_name": "demo"
		}`))
	})

	resp, err := client.GetStudyStatus(context.Background(), "abc123")
	require.NoError(t, err)
	// only the status projection survives
	assert.JSONEq(t, `{
		"id": "abc123",
		"status": "ACTIVE",
		"total_available_places": 50,
		"places_taken": 23,
		"completion_rate": 0.46
	}`, string(resp))
}

func Test_ListStudies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/studies/", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"results":[{"id":"abc123"},{"id":"def456"}]}`))
	})

	resp, err := client.ListStudies(context.Background(), 10)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"abc123"},{"id":"def456"}]`, string(resp))
}

func Test_ListStudies_NoLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	resp, err := client.ListStudies(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(resp))
}

func Test_CreateTestParticipant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/researchers/participants/", r.URL.Path)

		bs, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"email":"tester@example.com"}`, string(bs))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1","email":"tester@example.com"}`))
	})

	resp, err := client.CreateTestParticipant(context.Background(), "tester@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","email":"tester@example.com"}`, string(resp))
}

func Test_LaunchTestStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/studies/abc123/test-study", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"abc123","test_study":true}`))
	})

	resp, err := client.LaunchTestStudy(context.Background(), "abc123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","test_study":true}`, string(resp))
}

func Test_DeleteStudy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/studies/abc123/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeleteStudy(context.Background(), "abc123")
	require.NoError(t, err)
}

func Test_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"detail":"Invalid study configuration"}}`))
	})

	_, err := client.GetStudy(context.Background(), "bad")
	require.Error(t, err)

	var apiErr *prolific.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Prolific API error: GET studies/bad/ returned 400", apiErr.Message)
	assert.JSONEq(t, `{"error":{"detail":"Invalid study configuration"}}`, string(apiErr.Body))
	assert.Equal(t, "Prolific API error: GET studies/bad/ returned 400 (Status: 400)", apiErr.Error())
}

func Test_TransportError(t *testing.T) {
	cfg := &config.Config{APIKey: "testkey", BaseURL: "http://127.0.0.1:1"}
	client := prolific.NewClient(cfg)

	_, err := client.GetStudy(context.Background(), "abc123")
	require.Error(t, err)

	var apiErr *prolific.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Request failed:")
}
