package simulation

import (
	"context"
	"fmt"
	"time"

	golog "github.com/tochemey/goakt/v3/log"
)

// Summary describes a finished headless run.
type Summary struct {
	Ticks     uint64        `json:"ticks" yaml:"ticks"`
	Agents    int           `json:"agents" yaml:"agents"`
	MeanSpeed float64       `json:"meanSpeed" yaml:"meanSpeed"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d ticks, %d agents, mean speed %.4f, %s", s.Ticks, s.Agents, s.MeanSpeed, s.Elapsed)
}

// RunHeadless steps the configured world without a window.
// It stops early with ctx.Err() when ctx is cancelled.
func RunHeadless(ctx context.Context, cfg *Config, steps int, logger golog.Logger) (Summary, error) {
	if steps < 0 {
		return Summary{}, fmt.Errorf("%w: negative step count %d", ErrInvalidConfig, steps)
	}
	world, err := cfg.NewWorld(logger)
	if err != nil {
		return Summary{}, err
	}

	start := time.Now()
	lastLog := start
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		world.Step()
		if time.Since(lastLog) >= time.Second {
			logger.Infof("📊 tick %d/%d", world.Ticks(), steps)
			lastLog = time.Now()
		}
	}

	s := Summary{
		Ticks:   world.Ticks(),
		Agents:  world.Len(),
		Elapsed: time.Since(start),
	}
	agents := world.Agents()
	for _, a := range agents {
		s.MeanSpeed += a.Speed()
	}
	if len(agents) > 0 {
		s.MeanSpeed /= float64(len(agents))
	}
	logger.Infof("headless run done: %s", s)
	return s, nil
}
