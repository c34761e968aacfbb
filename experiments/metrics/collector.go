package metrics

import (
	"sync/atomic"
	"time"
)

type RunMetric struct {
	Sampler   string
	StartTime time.Time
	Duration  time.Duration
	Steps     int // Trials for growth samplers, chain steps for Markov samplers
	Accepted  int // Accepted proposals, or untrapped trials
	Trapped   int // Trials or growth proposals that ran out of free neighbors
}

// AcceptanceRatio is Accepted / Steps, or 0 before any step.
func (m RunMetric) AcceptanceRatio() float64 {
	if m.Steps == 0 {
		return 0
	}
	return float64(m.Accepted) / float64(m.Steps)
}

type Collector interface {
	Start(sampler string)
	AddStep()
	AddAccepted()
	AddTrapped()
	Complete() RunMetric
}

type collector struct {
	sampler   string
	startTime time.Time
	steps     atomic.Int64
	accepted  atomic.Int64
	trapped   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(sampler string) {
	m.sampler = sampler
	m.startTime = time.Now()
	m.steps.Store(0)
	m.accepted.Store(0)
	m.trapped.Store(0)
}

func (m *collector) AddStep() {
	m.steps.Add(1)
}

func (m *collector) AddAccepted() {
	m.accepted.Add(1)
}

func (m *collector) AddTrapped() {
	m.trapped.Add(1)
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Sampler:   m.sampler,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Steps:     int(m.steps.Load()),
		Accepted:  int(m.accepted.Load()),
		Trapped:   int(m.trapped.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(sampler string) {}
func (m *dummyCollector) AddStep()             {}
func (m *dummyCollector) AddAccepted()         {}
func (m *dummyCollector) AddTrapped()          {}
func (m *dummyCollector) Complete() RunMetric  { return RunMetric{} }
