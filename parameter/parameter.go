// Package parameter models the scalar physical inputs of a rail temperature
// simulation. A value is either constant or drawn from a probability
// distribution, with a resampling mode that controls how often fresh draws
// are taken during a Monte Carlo campaign.
package parameter

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Mode controls when a random parameter value is resampled.
type Mode int

const (
	// Variable draws a fresh value on every read.
	Variable Mode = iota
	// FixedPerRun freezes the value for a whole simulation run; Reinit
	// draws a new one for the next run.
	FixedPerRun
	// FixedGlobal draws once and converts the value into a Constant.
	FixedGlobal
)

var modeNames = map[Mode]string{
	Variable:    "variable",
	FixedPerRun: "fixed_per_run",
	FixedGlobal: "fixed_global",
}

func (m Mode) String() string {
	name, ok := modeNames[m]
	if !ok {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return name
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be given
// by name in yaml campaign files.
func (m *Mode) UnmarshalText(text []byte) error {
	for mode, name := range modeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown parameter mode: %q", string(text))
}

// Value is the contract shared by all parameter value variants.
type Value interface {
	// GetValue returns the current value of the parameter. Under the
	// Variable mode this draws (and validates) a fresh sample.
	GetValue() (float64, error)
	// SetMode sets the resampling mode and returns the Value to use from
	// now on. For FixedGlobal this is a new Constant holding a final
	// draw; callers must always use the returned Value.
	SetMode(mode Mode) (Value, error)
	// Reinit draws a new frozen value under FixedPerRun; no-op otherwise.
	Reinit() error
	// Clone returns an independent copy for per-run isolation.
	Clone() Value
	// TypeAsString returns the variant name, e.g. "uniform".
	TypeAsString() string
}

// NewSource returns a deterministic random source for the given seed. All
// parameter values of a campaign should share one source so the sequence of
// draws is reproducible.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

func orDefaultSource(src rand.Source) rand.Source {
	if src != nil {
		return src
	}
	now := uint64(time.Now().UnixNano())
	return rand.NewPCG(now, now)
}

// Constant is a fixed parameter value.
type Constant struct {
	value float64
}

// NewConstant returns a Constant, rejecting non-finite values.
func NewConstant(value float64) (*Constant, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errors.New("constant parameter value must be finite")
	}
	return &Constant{value: value}, nil
}

func (c *Constant) GetValue() (float64, error) {
	return c.value, nil
}

// SetMode has no effect on a Constant; every mode reads the same value.
func (c *Constant) SetMode(Mode) (Value, error) {
	return c, nil
}

func (c *Constant) Reinit() error {
	return nil
}

func (c *Constant) Clone() Value {
	clone := *c
	return &clone
}

func (c *Constant) TypeAsString() string {
	return "constant"
}

// distribution is the sampling contract implemented per variant. Validation
// runs immediately after every draw; an out-of-domain sample is an error,
// never clamped or retried.
type distribution interface {
	sample() float64
	validate(value float64) error
	name() string
}

// Random is a parameter value backed by a distribution and a resampling
// mode. The zero mode is Variable.
type Random struct {
	dist   distribution
	mode   Mode
	frozen float64
}

// newRandom draws and validates an initial value so malformed distributions
// fail at construction time.
func newRandom(dist distribution) (*Random, error) {
	r := &Random{dist: dist, mode: Variable}
	value, err := r.draw()
	if err != nil {
		return nil, err
	}
	r.frozen = value
	return r, nil
}

func (r *Random) draw() (float64, error) {
	value := r.dist.sample()
	if err := r.dist.validate(value); err != nil {
		return 0, fmt.Errorf("%s parameter: %w", r.dist.name(), err)
	}
	return value, nil
}

func (r *Random) GetValue() (float64, error) {
	if r.mode == FixedPerRun {
		return r.frozen, nil
	}
	return r.draw()
}

// SetMode stores the resampling policy. FixedGlobal takes a final draw and
// returns a new Constant; the receiver must not be used afterwards.
func (r *Random) SetMode(mode Mode) (Value, error) {
	if mode == FixedGlobal {
		value, err := r.draw()
		if err != nil {
			return nil, err
		}
		return NewConstant(value)
	}
	r.mode = mode
	return r, nil
}

// Reinit draws the frozen value for the next run. Only meaningful under
// FixedPerRun; the campaign driver calls it once per new run.
func (r *Random) Reinit() error {
	if r.mode != FixedPerRun {
		return nil
	}
	value, err := r.draw()
	if err != nil {
		return err
	}
	r.frozen = value
	return nil
}

// Clone copies the value and its current frozen draw. The underlying random
// source is shared so a campaign consumes one deterministic draw sequence.
func (r *Random) Clone() Value {
	clone := *r
	return &clone
}

func (r *Random) TypeAsString() string {
	return r.dist.name()
}

// Mode returns the active resampling mode.
func (r *Random) Mode() Mode {
	return r.mode
}
