// Package runner puts together a phrase-evolving search from configuration.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/genetic/config"
	"github.com/domino14/genetic/evolution"
	"github.com/domino14/genetic/phrase"
	"github.com/domino14/genetic/report"
)

// Runner evolves strings towards the configured secret phrase.
type Runner struct {
	cfg       *config.Config
	evaluator phrase.Evaluator
	engine    *evolution.Engine[string]
	stopping  *stopping
}

func New(cfg *config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	secret := cfg.GetString(config.ConfigSecret)
	alphabet := cfg.GetString(config.ConfigAlphabet)
	if missing := lo.Uniq(lo.Filter([]rune(secret), func(c rune, _ int) bool {
		return !strings.ContainsRune(alphabet, c)
	})); len(missing) > 0 {
		log.Warn().Str("missing", string(missing)).Msg("secret has characters outside the alphabet; it cannot be matched exactly")
	}

	evaluator, err := phrase.NewEvaluator(cfg.GetString(config.ConfigEvaluator), secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	rng := evolution.NewRand(cfg.GetUint64(config.ConfigSeed))
	sel, err := newSelector(cfg, rng)
	if err != nil {
		return nil, err
	}
	size := len([]rune(secret))
	engine := evolution.NewEngine[string](
		phrase.NewGenerator(size, alphabet, rng),
		evaluator,
		sel,
		phrase.NewCrossover(rng),
		phrase.NewMutation(cfg.GetFloat64(config.ConfigCharMutationRate), alphabet, rng),
		evolution.Config{
			PopSize:      cfg.GetInt(config.ConfigPopSize),
			Workers:      cfg.GetInt(config.ConfigWorkers),
			MutationRate: cfg.GetFloat64(config.ConfigMutationRate),
			Rand:         rng,
		},
	)
	return &Runner{
		cfg:       cfg,
		evaluator: evaluator,
		engine:    engine,
		stopping:  newStopping(cfg, evaluator.MaxScore()),
	}, nil
}

// Run searches until a stopping criterion is met or ctx is cancelled. On
// cancellation the report of the best candidate so far is returned along
// with the context's error.
func (r *Runner) Run(ctx context.Context) (report.Report, error) {
	logger := zerolog.Ctx(ctx)
	r.stopping.reset()

	var genlog *report.GenerationLog
	if path := r.cfg.GetString(config.ConfigGenerationLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return report.Report{}, err
		}
		defer f.Close()
		genlog = report.NewGenerationLog(f)
		logger.Info().Str("path", path).Msg("writing generation log")
	}
	r.engine.OnGeneration(func(g evolution.Generation) {
		if genlog != nil {
			genlog.Observe(g)
		}
		logger.Debug().Int("generation", g.Number).Float64("best", g.Summary.Best).
			Float64("mean", g.Summary.Mean).Msg("generation")
	})

	res, err := r.engine.Search(ctx, r.stopping.criterion())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return report.Report{}, err
	}
	rep := report.Report{
		Best:        res.Best,
		BestRating:  res.BestRating,
		MaxScore:    r.evaluator.MaxScore(),
		Generations: res.Generations,
		Ratings:     res.Ratings,
		Summary:     res.Summary,
	}
	if err != nil {
		rep.Stopped = err.Error()
	} else {
		rep.Stopped = r.stopping.reason(res.BestRating)
	}
	if genlog != nil {
		if lerr := genlog.Err(); lerr != nil {
			logger.Error().Err(lerr).Msg("generation log incomplete")
		}
	}
	return rep, err
}
