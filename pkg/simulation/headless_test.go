package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

func smallConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 400
	cfg.WorldHeight = 300
	cfg.AgentCount = 60
	cfg.Seed = 8
	return cfg
}

func TestRunHeadless(t *testing.T) {
	s, err := RunHeadless(context.Background(), smallConfig(), 25, golog.DiscardLogger)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), s.Ticks)
	assert.Equal(t, 60, s.Agents)
	assert.Greater(t, s.MeanSpeed, 0.0)
	assert.LessOrEqual(t, s.MeanSpeed, flock.MaxSpeed)
}

func TestRunHeadless_Deterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := RunHeadless(context.Background(), cfg, 40, golog.DiscardLogger)
	require.NoError(t, err)

	cfg.NeighborIndex = "rtree"
	b, err := RunHeadless(context.Background(), cfg, 40, golog.DiscardLogger)
	require.NoError(t, err)
	assert.Equal(t, a.MeanSpeed, b.MeanSpeed, "index choice must not change the run")
}

func TestRunHeadless_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunHeadless(ctx, smallConfig(), 10, golog.DiscardLogger)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = RunHeadless(context.Background(), smallConfig(), -1, golog.DiscardLogger)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := smallConfig()
	cfg.AgentCount = -5
	_, err = RunHeadless(context.Background(), cfg, 1, golog.DiscardLogger)
	assert.ErrorIs(t, err, flock.ErrInvalidWorld)
}
