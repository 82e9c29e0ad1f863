// Package montecarlo drives ensembles of rail temperature simulations over
// resampled physical parameters and multiple weather sources.
package montecarlo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aryvini/railtemp"
)

// Status is the lifecycle state of a simulation run.
type Status int

const (
	NotStarted Status = iota
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Completed:
		return "COMPLETED"
	case Failed:
		return "FAILED"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler for json output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SimuRun is one simulation run of a campaign: a CNU simulation built on an
// independent rail copy, plus run state. A run transitions from NotStarted
// to Completed or Failed exactly once.
type SimuRun struct {
	ID uuid.UUID

	sim       *railtemp.CNU
	status    Status
	startTime time.Time
	endTime   time.Time
	result    *railtemp.ResultTrace
	err       error
}

// NewSimuRun wraps a simulation in run state.
func NewSimuRun(sim *railtemp.CNU) (*SimuRun, error) {
	if sim == nil {
		return nil, errors.New("simulation must not be nil")
	}
	return &SimuRun{ID: uuid.New(), sim: sim}, nil
}

// Run executes the simulation. If trailInitial is nil the first ambient
// temperature of the weather series is used. Failure is recorded on the run
// and returned; the run is never retried.
func (r *SimuRun) Run(trailInitial *float64) error {
	if r.status != NotStarted {
		return fmt.Errorf("run %s already executed with status %s", r.ID, r.status)
	}

	initial := r.sim.Weather().AmbientTemperature[0]
	if trailInitial != nil {
		initial = *trailInitial
	}

	r.startTime = time.Now()
	r.result, r.err = r.sim.Run(initial)
	r.endTime = time.Now()

	if r.err != nil {
		r.status = Failed
		return r.err
	}
	r.status = Completed
	return nil
}

// Simulation returns the underlying CNU simulation.
func (r *SimuRun) Simulation() *railtemp.CNU { return r.sim }

// Status returns the lifecycle state of the run.
func (r *SimuRun) Status() Status { return r.status }

// Err returns the failure of the run, if any.
func (r *SimuRun) Err() error { return r.err }

// Result returns the finished trace, or nil if the run has not completed.
func (r *SimuRun) Result() *railtemp.ResultTrace { return r.result }

// Duration returns the wall-clock execution time of the run.
func (r *SimuRun) Duration() time.Duration { return r.endTime.Sub(r.startTime) }

// runDocument is the json shape of a saved run.
type runDocument struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	DurationS float64         `json:"duration_seconds"`
	Error     string          `json:"error,omitempty"`
	Rows      []railtemp.Row  `json:"results"`
}

// SaveJSON writes the run metadata and result trace to a json file.
func (r *SimuRun) SaveJSON(path string) error {
	doc := runDocument{
		ID:        r.ID.String(),
		Status:    r.status,
		StartTime: r.startTime,
		EndTime:   r.endTime,
		DurationS: r.Duration().Seconds(),
	}
	if r.err != nil {
		doc.Error = r.err.Error()
	}
	if r.result != nil {
		doc.Rows = r.result.Rows
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}
