package metrics

import (
	"sync/atomic"
	"time"
)

// Playout terminal statuses, in the order searcher.Status enumerates them.
const (
	StatusPassPass = iota
	StatusMercy
	StatusTooLong
	NumStatuses
)

type TrainMetric struct {
	Goroutines int
	Policy     string
	Duration   time.Duration
	Playouts   int
	Statuses   [NumStatuses]int
	Moves      int // Total moves over all playouts
}

func (m TrainMetric) MeanLength() float64 {
	if m.Playouts == 0 {
		return 0
	}
	return float64(m.Moves) / float64(m.Playouts)
}

func (m TrainMetric) PlayoutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Playouts) / m.Duration.Seconds()
}

type MoveMetric struct {
	Step   int
	Player string
	Vertex string
	TrainMetric
}

// Reasons a game ended.
const (
	EndPassPass = "pass_pass"
	EndMoveCap  = "move_cap"
)

type GameMetric struct {
	StartingPlayer string
	Winner         string
	EndReason      string
	Score          float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int, policy string)
	AddPlayout(status, length int)
	Complete() TrainMetric
}

type collector struct {
	goroutines int
	policy     string
	startTime  time.Time
	playouts   atomic.Int64
	moves      atomic.Int64
	statuses   [NumStatuses]atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new training cycle.
func (m *collector) Start(goroutines int, policy string) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.policy = policy
	m.playouts.Store(0)
	m.moves.Store(0)
	for i := range m.statuses {
		m.statuses[i].Store(0)
	}
}

func (m *collector) AddPlayout(status, length int) {
	m.playouts.Add(1)
	m.moves.Add(int64(length))
	m.statuses[status].Add(1)
}

func (m *collector) Complete() TrainMetric {
	metric := TrainMetric{
		Goroutines: m.goroutines,
		Policy:     m.policy,
		Duration:   time.Since(m.startTime),
		Playouts:   int(m.playouts.Load()),
		Moves:      int(m.moves.Load()),
	}
	for i := range m.statuses {
		metric.Statuses[i] = int(m.statuses[i].Load())
	}
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, policy string) {}
func (m *dummyCollector) AddPlayout(status, length int)       {}
func (m *dummyCollector) Complete() TrainMetric               { return TrainMetric{} }
