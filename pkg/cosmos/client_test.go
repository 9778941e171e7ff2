package cosmos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugohenrick/controle-fiscal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("COSMOS_API_URL", server.URL)
	t.Setenv("COSMOS_API_KEY", "test-key")
	return NewClient(logger.NewLogger())
}

func TestCESTByNCMFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ncms/12345678", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Cosmos-Token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"12345678","cests":[{"code":"0100100"}]}`))
	})

	cest, found, err := client.CESTByNCM(context.Background(), "12345678")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0100100", cest)
}

func TestCESTByNCMNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, found, err := client.CESTByNCM(context.Background(), "99999999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCESTByNCMWithoutCESTList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"10063021","cests":[]}`))
	})

	_, found, err := client.CESTByNCM(context.Background(), "10063021")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCESTByNCMMalformedResponseIsMiss(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>erro</html>`))
	})

	_, found, err := client.CESTByNCM(context.Background(), "12345678")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCESTByNCMServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := client.CESTByNCM(context.Background(), "12345678")
	assert.Error(t, err)
}

func TestCESTByNCMContextTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := client.CESTByNCM(ctx, "12345678")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
