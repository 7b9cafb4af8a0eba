package host

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/host/hosttest"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

func TestClient_Boot(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()

	resp, err := NewClient(Config{Timeout: time.Second}).Boot(context.Background(), srv.Location("reports/q1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"reports/q1","booted":true}`, string(resp))

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "reports/q1", calls[0].Address)
	assert.Equal(t, domain.MethodBoot, calls[0].Method)
	assert.Equal(t, ContentType, calls[0].ContentType)
	assert.Equal(t, ContentType, calls[0].Accept)
	assert.JSONEq(t, `{}`, string(calls[0].Body))
}

func TestClient_Render(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	srv.OnRender(func(address, content string) (string, error) {
		assert.Equal(t, "a/b", address)
		assert.Equal(t, "<div>X</div>", content)
		return "<div>Y</div>", nil
	})

	resp, err := NewClient(Config{}).Render(context.Background(), srv.Location("a/b"), domain.RenderRequest{
		Format:  domain.FormatHTML,
		Content: "<div>X</div>",
	})
	require.NoError(t, err)
	assert.Equal(t, "<div>Y</div>", resp.Content)

	calls := srv.CallsTo(domain.MethodRender)
	require.Len(t, calls, 1)
	var sent map[string]string
	require.NoError(t, json.Unmarshal(calls[0].Body, &sent))
	assert.Equal(t, map[string]string{"format": "html", "content": "<div>X</div>"}, sent)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	srv.FailWith(domain.MethodRender, http.StatusInternalServerError)

	_, err := NewClient(Config{}).Render(context.Background(), srv.Location("a"), domain.RenderRequest{Format: "html"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHostStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_EmptyBootBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/doc@boot", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	loc := domain.Location{Protocol: "http:", Host: srv.Listener.Addr().String(), Address: "doc"}
	resp, err := NewClient(Config{}).Boot(context.Background(), loc)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestClient_InvalidRenderBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()
	loc := domain.Location{Protocol: "http:", Host: srv.Listener.Addr().String(), Address: "doc"}
	client := NewClient(Config{})

	_, err := client.Render(context.Background(), loc, domain.RenderRequest{})
	assert.Error(t, err)
}

func TestClient_BootResponseIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("booted"))
	}))
	defer srv.Close()
	loc := domain.Location{Protocol: "http:", Host: srv.Listener.Addr().String(), Address: "doc"}

	resp, err := NewClient(Config{}).Boot(context.Background(), loc)

	require.NoError(t, err)
	assert.Equal(t, "booted", string(resp))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	loc := domain.Location{Protocol: "http:", Host: srv.Listener.Addr().String(), Address: "doc"}
	_, err := NewClient(Config{Timeout: 50 * time.Millisecond}).Boot(context.Background(), loc)
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Config{}).Boot(ctx, srv.Location("doc"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := hosttest.NewServer()
	loc := srv.Location("doc")
	srv.Close()

	_, err := NewClient(Config{Timeout: time.Second}).Boot(context.Background(), loc)
	assert.Error(t, err)
}
