package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterAnswersEveryRequest(t *testing.T) {
	srv := httptest.NewServer(newRouter("Hello World", newLogger(io.Discard, log.InfoLevel)))
	defer srv.Close()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/people/1"},
		{http.MethodPost, "/api/films/?search=hope"},
		{http.MethodPut, "/deeply/nested/path/"},
		{http.MethodDelete, "/x"},
		{http.MethodPatch, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader("ignored"))
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Hello World", string(body))
			assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		})
	}
}

func TestRouterRequestID(t *testing.T) {
	var logs bytes.Buffer
	srv := httptest.NewServer(newRouter("hi", newLogger(&logs, log.InfoLevel)))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	id := resp.Header.Get(requestIDHeader)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated id %q", id)
	assert.Contains(t, logs.String(), id)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	req.Header.Set(requestIDHeader, "trace-42")
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "trace-42", resp.Header.Get(requestIDHeader))
	assert.Contains(t, logs.String(), "trace-42")
}

func TestServeListenerShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, ln, newRouter("Hello World", newLogger(io.Discard, log.InfoLevel)), newLogger(io.Discard, log.InfoLevel))
	}()

	url := "http://" + ln.Addr().String() + "/anything"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestServeRejectsBadAddress(t *testing.T) {
	err := serve(context.Background(), "not-an-address", http.NotFoundHandler(), newLogger(io.Discard, log.InfoLevel))
	assert.Error(t, err)
}
