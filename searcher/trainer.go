package searcher

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"ego/experiments/metrics"
	"ego/game"
	"ego/meta"
	"ego/utils"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type Option func(t *Trainer)

// Trainer runs playouts from one position and aggregates them into AafStats.
type Trainer struct {
	playouts         int
	goroutines       int
	prior            float64
	aafFraction      float64
	localProbability float64
	seed             uint64
	playout          PlayoutConfig
	metrics          metrics.Collector
	progress         bool

	logStream io.Writer
	logEvery  int
	logMu     sync.Mutex

	cycle atomic.Uint64
}

// LogPlayout is a sampled playout serialized to the playout log.
type LogPlayout struct {
	Cycle   uint64   `yaml:"cycle"`
	Playout int64    `yaml:"playout"`
	Worker  int      `yaml:"worker"`
	Policy  string   `yaml:"policy"`
	Status  string   `yaml:"status"`
	Length  int      `yaml:"length"`
	Score   float64  `yaml:"score"`
	Moves   []string `yaml:"moves,flow"`
}

func WithPlayouts(playouts int) Option {
	return func(t *Trainer) {
		if playouts > 0 {
			t.playouts = playouts
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(t *Trainer) {
		if goroutines > 0 {
			t.goroutines = goroutines
		}
	}
}

func WithPrior(prior float64) Option {
	return func(t *Trainer) {
		if prior >= 0 {
			t.prior = prior
		}
	}
}

func WithAafFraction(fraction float64) Option {
	return func(t *Trainer) {
		if fraction > 0 && fraction <= 1 {
			t.aafFraction = fraction
		}
	}
}

func WithLocalProbability(probability float64) Option {
	return func(t *Trainer) {
		if probability >= 0 && probability <= 1 {
			t.localProbability = probability
		}
	}
}

// WithSeed makes training reproducible. Zero picks a random seed.
func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		if seed != 0 {
			t.seed = seed
		}
	}
}

func WithMercy(threshold float64) Option {
	return func(t *Trainer) {
		t.playout.Mercy = true
		if threshold > 0 {
			t.playout.MercyThreshold = threshold
		}
	}
}

func WithMetrics() Option {
	return func(t *Trainer) {
		t.metrics = metrics.NewCollector()
	}
}

// WithProgress logs progress every 5% of a training cycle.
func WithProgress() Option {
	return func(t *Trainer) {
		t.progress = true
	}
}

// WithPlayoutLog writes every n-th playout of a cycle to w as YAML.
func WithPlayoutLog(w io.Writer, every int) Option {
	return func(t *Trainer) {
		if w != nil && every > 0 {
			t.logStream = w
			t.logEvery = every
		}
	}
}

func NewTrainer(options ...Option) *Trainer {
	t := &Trainer{ // Default values
		playouts:         meta.PLAYOUTS,
		goroutines:       meta.GO_ROUTINES,
		prior:            meta.PRIOR,
		aafFraction:      meta.AAF_FRACTION,
		localProbability: meta.LOCAL_PROBABILITY,
		playout:          DefaultPlayoutConfig(),
		metrics:          metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	if t.seed == 0 {
		t.seed = RandomSeed()
	}
	return t
}

func (t *Trainer) Playouts() int                { return t.playouts }
func (t *Trainer) Goroutines() int              { return t.goroutines }
func (t *Trainer) AafFraction() float64         { return t.aafFraction }
func (t *Trainer) LocalProbability() float64    { return t.localProbability }
func (t *Trainer) PlayoutConfig() PlayoutConfig { return t.playout }

// cycleRun is the state shared by the workers of one Train call.
type cycleRun struct {
	cycle  uint64
	kind   PolicyKind
	start  *game.Board
	done   atomic.Int64
	step   int64
	logger *zerolog.Logger
}

// Train runs the configured number of playouts from start, which is only
// read. Playouts are split evenly over the workers; each worker owns a board
// copy, a random stream and partial statistics that are merged at the end.
func (t *Trainer) Train(ctx context.Context, start *game.Board, kind PolicyKind) (*AafStats, metrics.TrainMetric, error) {
	run := &cycleRun{
		cycle:  t.cycle.Add(1),
		kind:   kind,
		start:  start,
		step:   max(int64(t.playouts)/20, 1),
		logger: zerolog.Ctx(ctx),
	}

	t.metrics.Start(t.goroutines, kind.String())
	shares := utils.SplitEven(t.playouts, t.goroutines)
	partials := make([]*AafStats, len(shares))

	g, gctx := errgroup.WithContext(ctx)
	for worker, share := range shares {
		partials[worker] = NewAafStats(t.prior)
		random := NewSource(streamSeed(t.seed, run.cycle, worker))
		g.Go(func() error {
			return t.work(gctx, run, worker, share, random, partials[worker])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, t.metrics.Complete(), fmt.Errorf("training cycle %d stopped: %w", run.cycle, err)
	}

	stats := NewAafStats(t.prior)
	for _, partial := range partials {
		stats.Merge(partial)
	}
	metric := t.metrics.Complete()
	run.logger.Debug().Uint64("cycle", run.cycle).Str("policy", kind.String()).
		Int("playouts", t.playouts).Float64("mean", stats.Unconditional().Mean()).Msg("training complete")
	return stats, metric, nil
}

func (t *Trainer) work(ctx context.Context, run *cycleRun, worker, count int, random Source, stats *AafStats) error {
	switch run.kind {
	case AtariKind:
		return playMany(ctx, t, run, NewAtariPolicy(random), worker, count, stats)
	case LocalKind:
		return playMany(ctx, t, run, NewLocalPolicy(random, t.localProbability), worker, count, stats)
	default:
		return playMany(ctx, t, run, NewSimplePolicy(random), worker, count, stats)
	}
}

func playMany[P Policy](ctx context.Context, t *Trainer, run *cycleRun, policy P, worker, count int, stats *AafStats) error {
	board := new(game.Board)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		board.Load(run.start)
		result := Run(policy, board, t.playout)
		score := board.Score()
		aafCount := int(float64(result.Length) * t.aafFraction)
		stats.Update(result.Moves, aafCount, score)
		stats.OwnageUpdate(board)
		t.metrics.AddPlayout(int(result.Status), result.Length)

		done := run.done.Add(1)
		if t.progress && done%run.step == 0 {
			run.logger.Info().Int64("done", done).Int("total", t.playouts).Msg("training progress")
		}
		if t.logStream != nil && done%int64(t.logEvery) == 0 {
			err := t.writeLog(run, done, worker, result, aafCount, score)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Trainer) writeLog(run *cycleRun, playout int64, worker int, result Result, aafCount int, score float64) error {
	entry := LogPlayout{
		Cycle:   run.cycle,
		Playout: playout,
		Worker:  worker,
		Policy:  run.kind.String(),
		Status:  result.Status.String(),
		Length:  result.Length,
		Score:   score,
		Moves:   make([]string, 0, aafCount),
	}
	for _, m := range result.Moves[:aafCount] {
		entry.Moves = append(entry.Moves, strings.ToLower(m.Player.String())+" "+m.Vertex.String())
	}
	out, err := yaml.Marshal([]LogPlayout{entry})
	if err != nil {
		run.logger.Error().Err(err).Msg("marshalling playout log")
		return err
	}

	t.logMu.Lock()
	defer t.logMu.Unlock()
	_, err = t.logStream.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write playout log: %w", err)
	}
	return nil
}
