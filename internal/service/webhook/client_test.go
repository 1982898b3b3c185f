package webhook

import (
	"context"
	"encoding/json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Post(t *testing.T) {
	var (
		gotHeader http.Header
		gotBody   map[string]interface{}
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), discardLogger())
	delivery, err := client.Post(context.Background(), map[string]interface{}{"name": "An", "rowNumber": 5})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, userAgent, gotHeader.Get("User-Agent"))
	assert.Equal(t, delivery.ID, gotHeader.Get("X-Delivery-ID"))
	_, err = uuid.Parse(delivery.ID)
	assert.NoError(t, err)

	assert.Equal(t, "An", gotBody["name"])
	assert.Equal(t, 5.0, gotBody["rowNumber"])
	assert.Equal(t, http.StatusOK, delivery.StatusCode)
	assert.Equal(t, `{"status":"ok"}`, delivery.Body)
}

func TestClient_PostErrorStatusIsDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	delivery, err := New(srv.URL, srv.Client(), discardLogger()).Post(context.Background(), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, delivery.StatusCode)
	assert.Equal(t, "boom", delivery.Body)
}

func TestClient_PostTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	delivery, err := New(url, nil, discardLogger()).Post(context.Background(), map[string]string{})
	assert.Error(t, err)
	assert.Nil(t, delivery)
}

func TestClient_PostMarshalError(t *testing.T) {
	_, err := New("http://127.0.0.1:1", nil, discardLogger()).Post(context.Background(), map[string]interface{}{"bad": make(chan int)})
	assert.ErrorContains(t, err, "marshal payload")
}
