package sph

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every *ConfigError.
var ErrConfig = errors.New("sph: invalid configuration")

// ConfigError reports a parameter, bounds or layout value the simulation
// refuses to run with. A call that returns one has not mutated any state.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sph: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Anomaly describes a recoverable numeric problem seen during a step.
type Anomaly struct {
	Step     uint64
	Particle int
	Density  float64
}

// AnomalyHook receives anomalies as they happen. It must not call back into
// the simulation.
type AnomalyHook func(Anomaly)
