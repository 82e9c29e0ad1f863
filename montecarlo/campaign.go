package montecarlo

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/aryvini/railtemp"
)

// Campaign generates |weather sources| x |variations| independent
// simulation runs from one rail template. Each run receives a deep copy of
// the template, reinitialised so FixedPerRun parameters take fresh draws.
type Campaign struct {
	name       string
	rail       *railtemp.Rail
	weathers   []*railtemp.WeatherSeries
	variations int
	logger     *zap.SugaredLogger
	cnuOpts    []railtemp.CNUOption
}

// CampaignOption customises a campaign.
type CampaignOption func(*Campaign)

// WithName names the campaign for logging.
func WithName(name string) CampaignOption {
	return func(c *Campaign) { c.name = name }
}

// WithLogger injects a logger; the default discards output.
func WithLogger(logger *zap.SugaredLogger) CampaignOption {
	return func(c *Campaign) { c.logger = logger }
}

// WithCNUOptions forwards options (logger, solar position provider) to every
// simulation constructed by the campaign.
func WithCNUOptions(opts ...railtemp.CNUOption) CampaignOption {
	return func(c *Campaign) { c.cnuOpts = opts }
}

// NewCampaign validates and assembles a campaign over a rail template, a
// set of weather sources and a variation count.
func NewCampaign(rail *railtemp.Rail, weathers []*railtemp.WeatherSeries, variations int, opts ...CampaignOption) (*Campaign, error) {
	if rail == nil {
		return nil, errors.New("rail template must not be nil")
	}
	if len(weathers) == 0 {
		return nil, errors.New("campaign needs at least one weather source")
	}
	for i, w := range weathers {
		if w == nil {
			return nil, fmt.Errorf("weather source %d must not be nil", i)
		}
	}
	if variations <= 0 {
		return nil, errors.New("variations must be a positive integer")
	}

	c := &Campaign{
		name:       "campaign",
		rail:       rail,
		weathers:   weathers,
		variations: variations,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Size returns the total number of runs the campaign generates.
func (c *Campaign) Size() int { return len(c.weathers) * c.variations }

// Iterator returns a lazy iterator over the campaign's runs. Runs are
// constructed one at a time so parameter draws happen in a deterministic
// order for a seeded source.
func (c *Campaign) Iterator() *RunIterator {
	return &RunIterator{campaign: c}
}

// RunIterator constructs campaign runs on demand.
type RunIterator struct {
	campaign *Campaign
	next     int
}

// HasNext reports whether another run remains.
func (it *RunIterator) HasNext() bool {
	return it.next < it.campaign.Size()
}

// Next constructs the next run: a fresh deep copy of the rail template,
// reinitialised before the run reads any value. Construction errors (a
// resample failing validation) abort the iteration.
func (it *RunIterator) Next() (*SimuRun, error) {
	if !it.HasNext() {
		return nil, errors.New("campaign iterator exhausted")
	}
	c := it.campaign
	weather := c.weathers[it.next/c.variations]
	it.next++

	rail := c.rail.Clone()
	if err := rail.Reinit(); err != nil {
		return nil, fmt.Errorf("campaign %s: reinit run %d: %w", c.name, it.next-1, err)
	}

	sim, err := railtemp.NewCNU(rail, weather, c.cnuOpts...)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: run %d: %w", c.name, it.next-1, err)
	}
	return NewSimuRun(sim)
}

// Execute runs the whole campaign sequentially. A failed run is logged and
// kept in the returned slice with status Failed; its siblings continue. If
// trailInitial is nil each run starts from its first ambient temperature.
func (c *Campaign) Execute(trailInitial *float64) ([]*SimuRun, error) {
	runs := make([]*SimuRun, 0, c.Size())
	it := c.Iterator()
	for it.HasNext() {
		run, err := it.Next()
		if err != nil {
			return runs, err
		}
		if err := run.Run(trailInitial); err != nil {
			c.logger.Errorw("simulation run failed",
				"campaign", c.name, "run", run.ID, "error", err)
		} else {
			c.logger.Debugw("simulation run completed",
				"campaign", c.name, "run", run.ID, "duration", run.Duration())
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Summary aggregates a finished campaign: run counts and statistics of the
// peak rail temperature across completed runs.
type Summary struct {
	Runs      int
	Completed int
	Failed    int

	MeanPeakTemperature float64 // °C, mean over completed runs
	StdPeakTemperature  float64 // °C, sample standard deviation
}

// Summarize computes campaign statistics from executed runs.
func Summarize(runs []*SimuRun) Summary {
	summary := Summary{Runs: len(runs)}

	var peaks []float64
	for _, run := range runs {
		switch run.Status() {
		case Completed:
			summary.Completed++
			peak := math.Inf(-1)
			for _, row := range run.Result().Rows {
				if row.TrSimu > peak {
					peak = row.TrSimu
				}
			}
			peaks = append(peaks, peak)
		case Failed:
			summary.Failed++
		}
	}

	if len(peaks) > 0 {
		summary.MeanPeakTemperature = stat.Mean(peaks, nil)
	}
	if len(peaks) > 1 {
		summary.StdPeakTemperature = stat.StdDev(peaks, nil)
	}
	return summary
}
