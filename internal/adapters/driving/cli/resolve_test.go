package cli

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/host/hosttest"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
)

func TestResolveCmd(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)

	out, _, err := executeCommand(t, "resolve", writePage(t, reportPage))

	require.NoError(t, err)
	assert.Contains(t, out, "Address: reports/q1")
	assert.Contains(t, out, "Render:  "+srv.URL+"/reports/q1@render")
	assert.Empty(t, srv.Calls())
}

func TestResolveCmd_Unresolved(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)

	page := `<html><body><div id="content"></div></body></html>`
	out, _, err := executeCommand(t, "resolve", writePage(t, page))

	require.NoError(t, err)
	assert.Contains(t, out, "Address: (unresolved)")
}

func TestBootCmd(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)

	out, _, err := executeCommand(t, "boot", writePage(t, reportPage))

	require.NoError(t, err)
	assert.Contains(t, out, "Booted "+srv.URL+"/reports/q1")
	require.Len(t, srv.CallsTo(domain.MethodBoot), 1)
	assert.Equal(t, "{}", string(srv.CallsTo(domain.MethodBoot)[0].Body))
}

func TestBootCmd_HostFailure(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	srv.FailWith(domain.MethodBoot, http.StatusInternalServerError)
	useHost(t, srv)

	_, _, err := executeCommand(t, "boot", writePage(t, reportPage))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHostStatus)
	assert.Contains(t, err.Error(), "boot failed")
}
