package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Sleep(t *testing.T) {
	c := System{}

	start := time.Now()
	err := c.Sleep(context.Background(), 10*time.Millisecond)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSystem_SleepCancelled(t *testing.T) {
	c := System{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Sleep(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
}
