package hosttest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_UnknownMethod(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	resp := put(t, srv.URL+"/doc@publish", "{}")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = put(t, srv.URL+"/doc", "{}")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.Len(t, srv.Calls(), 1)
	assert.Equal(t, "publish", srv.Calls()[0].Method)
}

func TestServer_RejectsOtherFormats(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	resp := put(t, srv.URL+"/doc@render", `{"format":"md","content":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_Scripts(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	srv.ServeScript("/get/web/mathjax/MathJax.js", []byte("engine"))

	resp, err := http.Get(srv.URL + "/get/web/mathjax/MathJax.js?config=TeX")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "engine", string(body))

	missing, err := http.Get(srv.URL + "/nope.js")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	assert.Equal(t, []string{"/get/web/mathjax/MathJax.js", "/nope.js"}, srv.Fetches())
}

func TestServer_Location(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	loc := srv.Location("a/b")
	assert.Equal(t, srv.URL+"/a/b", loc.URL())
}
