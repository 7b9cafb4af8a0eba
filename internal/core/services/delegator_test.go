package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stencil-cli/internal/markup"
)

const buttonPage = `<html><body><div id="content">` +
	`<div class="toolbar"><span class="refresh button"><b>Refresh</b></span></div>` +
	`</div><span class="refresh button">outside</span></body></html>`

func TestDelegator_ClickBubblesToBinding(t *testing.T) {
	page, err := markup.ParseString(buttonPage, "content")
	require.NoError(t, err)
	d := NewDelegator(page)

	var order []string
	d.OnClick(".toolbar", func(context.Context) error { order = append(order, "toolbar"); return nil })
	d.OnClick(".refresh.button", func(context.Context) error { order = append(order, "button"); return nil })

	handled, err := d.Click(context.Background(), ".refresh.button b")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"button", "toolbar"}, order)
}

func TestDelegator_ClickWithoutTarget(t *testing.T) {
	page, err := markup.ParseString(buttonPage, "content")
	require.NoError(t, err)
	d := NewDelegator(page)
	d.OnClick(".refresh.button", func(context.Context) error { return nil })

	handled, err := d.Click(context.Background(), "#missing")
	require.NoError(t, err)
	assert.False(t, handled)

	handled, err = d.Click(context.Background(), ".toolbar")
	require.NoError(t, err)
	assert.False(t, handled, "clicks do not travel down to children")
}

func TestDelegator_BindingSurvivesContentReplacement(t *testing.T) {
	page, err := markup.ParseString(`<div id="content"><p>no button yet</p></div>`, "content")
	require.NoError(t, err)
	d := NewDelegator(page)
	clicks := 0
	d.OnClick(".refresh.button", func(context.Context) error { clicks++; return nil })

	handled, err := d.Click(context.Background(), ".refresh")
	require.NoError(t, err)
	assert.False(t, handled)

	require.NoError(t, page.Update(func(c *markup.Content) error {
		return c.Replace(`<a class="button refresh">go</a>`)
	}))

	handled, err = d.Click(context.Background(), ".refresh")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, clicks)
}

func TestDelegator_HandlerErrorStopsBubbling(t *testing.T) {
	page, err := markup.ParseString(buttonPage, "content")
	require.NoError(t, err)
	d := NewDelegator(page)
	boom := errors.New("boom")
	outer := false
	d.OnClick(".toolbar", func(context.Context) error { outer = true; return nil })
	d.OnClick(".button", func(context.Context) error { return boom })

	handled, err := d.Click(context.Background(), ".button")
	assert.True(t, handled)
	assert.ErrorIs(t, err, boom)
	assert.False(t, outer)
}

func TestDelegator_Key(t *testing.T) {
	page, err := markup.ParseString(buttonPage, "content")
	require.NoError(t, err)
	d := NewDelegator(page)
	pressed := 0
	d.OnKey("ctrl+r", func(context.Context) error { pressed++; return nil })

	handled, err := d.Key(context.Background(), "ctrl+r")
	require.NoError(t, err)
	assert.True(t, handled)

	handled, err = d.Key(context.Background(), "r")
	require.NoError(t, err)
	assert.False(t, handled)

	assert.Equal(t, 1, pressed)
	assert.Equal(t, []string{"ctrl+r"}, d.Keys())
}

func TestDefaultDelegator_RefreshBindings(t *testing.T) {
	host := &mockHost{}
	client, page := newClient(t, `<span class="refresh button">R</span>`, host, nil)
	d := NewDefaultDelegator(page, client)

	handled, err := d.Key(context.Background(), RefreshKey)
	require.NoError(t, err)
	assert.True(t, handled)

	handled, err = d.Click(context.Background(), RefreshButtonSelector)
	require.NoError(t, err)
	assert.True(t, handled)

	assert.Len(t, host.renders(), 2)
}

func TestDefaultDelegator_QueuedRefreshIsNotAnError(t *testing.T) {
	host := &mockHost{entered: make(chan struct{}), gate: make(chan struct{})}
	client, page := newClient(t, `<p>x</p>`, host, nil)
	d := NewDefaultDelegator(page, client)

	done := make(chan error, 1)
	go func() {
		_, err := client.Refresh(context.Background())
		done <- err
	}()
	<-host.entered

	handled, err := d.Key(context.Background(), RefreshKey)
	assert.True(t, handled)
	assert.NoError(t, err)

	host.gate <- struct{}{}
	<-host.entered
	host.gate <- struct{}{}
	require.NoError(t, <-done)
}
