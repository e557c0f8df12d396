package flock

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/tochemey/goakt/v3/log"
)

var (
	// ErrInvalidWorld is wrapped by every construction error of NewWorld.
	ErrInvalidWorld = errors.New("invalid world")
	// ErrUnknownOption is returned when a named index, policy or sampler does not exist.
	ErrUnknownOption = errors.New("unknown option")
)

// Bounds is the extent of the world, centred on the origin.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies in [-w/2, w/2] x [-h/2, h/2].
func (b Bounds) Contains(x, y float64) bool {
	return math.Abs(x) <= b.Width/2 && math.Abs(y) <= b.Height/2
}

func (b Bounds) validate() error {
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		return fmt.Errorf("%w: width must be a finite positive number, got %v", ErrInvalidWorld, b.Width)
	}
	if !(b.Height > 0) || math.IsInf(b.Height, 0) {
		return fmt.Errorf("%w: height must be a finite positive number, got %v", ErrInvalidWorld, b.Height)
	}
	return nil
}

// UpdatePolicy selects how a World applies a tick.
type UpdatePolicy int

const (
	// Sequential walks the population in ID order and mutates in place:
	// later agents see the positions earlier agents reached this tick.
	Sequential UpdatePolicy = iota
	// Snapshot computes every agent against the previous tick, then swaps.
	Snapshot
)

func (p UpdatePolicy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case Snapshot:
		return "snapshot"
	}
	return fmt.Sprintf("UpdatePolicy(%d)", int(p))
}

// ParseUpdatePolicy maps a config name to an UpdatePolicy.
func ParseUpdatePolicy(name string) (UpdatePolicy, error) {
	switch name {
	case "", "sequential":
		return Sequential, nil
	case "snapshot":
		return Snapshot, nil
	}
	return Sequential, fmt.Errorf("%w: update policy %q", ErrUnknownOption, name)
}

// ParseVelocitySampler maps a config name to a VelocitySampler.
func ParseVelocitySampler(name string) (VelocitySampler, error) {
	switch name {
	case "", "circle":
		return UnitCircle, nil
	case "disk":
		return UniformDisk, nil
	}
	return nil, fmt.Errorf("%w: initial velocity %q", ErrUnknownOption, name)
}

type options struct {
	rng     *rand.Rand
	sampler VelocitySampler
	index   NeighborIndex
	policy  UpdatePolicy
	workers int
	logger  log.Logger
}

func defaultOptions() options {
	return options{
		sampler: UnitCircle,
		policy:  Sequential,
		workers: runtime.GOMAXPROCS(0),
		logger:  log.DiscardLogger,
	}
}

// Option configures a World.
type Option func(*options)

// WithRand uses rng for every random draw of the world.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed makes construction reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = NewRand(seed)
	}
}

// WithVelocitySampler overrides the initial velocity distribution.
func WithVelocitySampler(s VelocitySampler) Option {
	return func(o *options) {
		if s != nil {
			o.sampler = s
		}
	}
}

// WithNeighborIndex selects the spatial structure answering neighbor queries.
func WithNeighborIndex(idx NeighborIndex) Option {
	return func(o *options) {
		o.index = idx
	}
}

// WithUpdatePolicy selects sequential or snapshot ticks.
func WithUpdatePolicy(p UpdatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithWorkers bounds the goroutines used by the Snapshot policy.
// Values below 1 keep the default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
