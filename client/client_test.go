package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	c := NewLocalClient(node)
	ctx := context.Background()
	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.CatchingUp)
	if status.Height < 1 {
		t.Fatalf("unexpected height from status: %d", status.Height)
	}
}

func TestHeader(t *testing.T) {
	c := NewLocalClient(node)
	ctx := context.Background()
	status, err := c.Status(ctx)
	require.NoError(t, err)
	maxHeight := status.Height

	header, err := c.Header(ctx, maxHeight)
	require.NoError(t, err)
	assert.Equal(t, maxHeight, header.Height)
	assert.Equal(t, chainID, header.ChainID)

	_, err = c.Header(ctx, maxHeight+20)
	assert.Error(t, err)
}

func TestSubscribeHeaders(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := context.WithCancel(context.Background())

	status, err := c.Status(ctx)
	require.NoError(t, err)
	lastHeight := status.Height

	headers := make(chan Header, 5)
	require.NoError(t, c.SubscribeHeaders(ctx, headers))

	// read three headers and ensure they are in order
	for i := 0; i < 3; i++ {
		h, ok := <-headers
		require.True(t, ok)
		assert.Equal(t, lastHeight+1, h.Height)
		lastHeight++
	}

	// cancel the context and ensure the channel is closed
	cancel()
	_, ok := <-headers
	assert.False(t, ok)
}
