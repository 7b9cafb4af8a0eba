package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/adapters/driven/host/hosttest"
)

const mathPage = `<html><body><div id="content">` +
	`<p><script type="math/tex; mode=display">e^{i\pi}</script></p>` +
	`<pre data-exec="py show" data-error="boom">1/0</pre>` +
	`</div></body></html>`

func TestConvertCmd_JSON(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)
	t.Cleanup(func() { convertRoundTrip = false })

	out, _, err := executeCommand(t, "convert", writePage(t, mathPage))
	require.NoError(t, err)

	var nodes []struct {
		Type string         `json:"type"`
		Node map[string]any `json:"node"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 2)

	assert.Equal(t, "stencil-math", nodes[0].Type)
	assert.Equal(t, "math/tex", nodes[0].Node["format"])
	assert.Equal(t, `e^{i\pi}`, nodes[0].Node["source"])

	assert.Equal(t, "stencil-exec", nodes[1].Type)
	assert.Equal(t, "py show", nodes[1].Node["spec"])
	assert.Equal(t, "boom", nodes[1].Node["error"])
	assert.Empty(t, srv.Calls())
}

func TestConvertCmd_Empty(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)
	t.Cleanup(func() { convertRoundTrip = false })

	out, _, err := executeCommand(t, "convert", writePage(t, `<html><body><div id="content"><p>x</p></div></body></html>`))

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestConvertCmd_RoundTrip(t *testing.T) {
	srv := hosttest.NewServer()
	defer srv.Close()
	useHost(t, srv)
	t.Cleanup(func() { convertRoundTrip = false })

	out, errOut, err := executeCommand(t, "convert", writePage(t, mathPage), "--roundtrip")

	require.NoError(t, err)
	assert.Contains(t, errOut, "Exported 2 of 2 nodes")
	assert.Contains(t, out, `<script type="math/tex">e^{i\pi}</script>`)
	assert.Contains(t, out, `<pre data-exec="py show" data-error="boom">1/0</pre>`)
}
