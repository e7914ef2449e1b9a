package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForNextBlock(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	lastHeight := status.Height

	header, err := c.WaitForNextBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, lastHeight+1, header.Height)
}

func TestWaitForHeight(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := timeoutCtx()
	defer cancel()

	cases := map[string]struct {
		diff int64
	}{
		"next block":   {diff: 1},
		"old block":    {diff: -2},
		"future block": {diff: 3},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, err := c.Status(ctx)
			require.NoError(t, err)
			desired := status.Height + tc.diff

			header, err := c.WaitForHeight(ctx, desired)
			require.NoError(t, err)
			require.NotNil(t, header)

			if tc.diff > 0 {
				// if it is the future, make sure we get correct header
				assert.True(t, desired >= header.Height)
			} else {
				// for the past, that we get the next header
				assert.True(t, status.Height+1 >= header.Height)
			}
		})
	}
}
