package recordstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-timeconsole/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *recordstore.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return recordstore.NewClient(recordstore.ClientConfig{
		BaseURL:  srv.URL + "/bases",
		BaseID:   "base1",
		APIToken: "tok",
	})
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bases/base1/tables/tPunch/records/list", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2000), body["limit"])
		assert.Equal(t, "4000", body["offset"])
		assert.Equal(t, map[string]any{
			"punch_in_time": map[string]any{"gte": "2024-03-01", "lte": "2024-03-15"},
		}, body["filters"])

		_, _ = io.WriteString(w, `{"records":[{"id":"p1","fields":{"punch_in_time":"2024-03-01T09:00:00Z"}}],"hasMore":true}`)
	})

	res, err := client.List(context.Background(), "tPunch", recordstore.ListQuery{
		Filters: recordstore.Filters{"punch_in_time": recordstore.Between("2024-03-01", "2024-03-15")},
		Limit:   2000,
		Offset:  4000,
	})

	require.NoError(t, err)
	assert.True(t, res.HasMore)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "p1", res.Records[0].ID)
}

func TestClient_FirstPageOmitsOffset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasOffset := body["offset"]
		assert.False(t, hasOffset)
		_, _ = io.WriteString(w, `{"records":[],"hasMore":false}`)
	})

	_, err := client.List(context.Background(), "tPunch", recordstore.ListQuery{Limit: 10})
	assert.NoError(t, err)
}

func TestClient_Update(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bases/base1/tables/tAlt/records/a1", r.URL.Path)

		var body struct {
			Record map[string]any `json:"record"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "approved", body.Record["status"])

		_, _ = io.WriteString(w, `{"id":"a1","fields":{"status":"approved"}}`)
	})

	rec, err := client.Update(context.Background(), "tAlt", "a1", map[string]any{"status": "approved"})

	require.NoError(t, err)
	assert.Equal(t, "approved", rec.Fields["status"])
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bases/base1/tables/tPP/records", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"pp9","fields":{"start_date":"2024-04-01"}}`)
	})

	rec, err := client.Create(context.Background(), "tPP", map[string]any{"start_date": "2024-04-01"})

	require.NoError(t, err)
	assert.Equal(t, "pp9", rec.ID)
}

func TestClient_Errors(t *testing.T) {
	t.Run("404 maps to ErrRecordNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.Get(context.Background(), "tAlt", "missing")
		assert.ErrorIs(t, err, recordstore.ErrRecordNotFound)
	})

	t.Run("5xx is a StatusError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "maintenance")
		})

		err := client.Delete(context.Background(), "tAlt", "a1")

		var statusErr *recordstore.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, "maintenance", statusErr.Body)
	})

	t.Run("missing token", func(t *testing.T) {
		client := recordstore.NewClient(recordstore.ClientConfig{BaseURL: "http://unused", BaseID: "b"})

		_, err := client.Get(context.Background(), "t", "id")
		assert.EqualError(t, err, "recordstore: missing api token")
	})
}
