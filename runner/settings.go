package runner

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/domino14/genetic/config"
	"github.com/domino14/genetic/criterion"
	"github.com/domino14/genetic/evolution"
	"github.com/domino14/genetic/selector"
)

// Stopping reasons reported by a run.
const (
	StopTarget         = "target reached"
	StopPlateau        = "plateau"
	StopMaxGenerations = "max generations"
)

func newSelector(cfg *config.Config, rng *rand.Rand) (evolution.Selector[string], error) {
	size := cfg.GetInt(config.ConfigSelectorSize)
	name := cfg.GetString(config.ConfigSelector)
	switch name {
	case config.SelectorRating:
		return selector.NewRating[string](size, rng), nil
	case config.SelectorElitism:
		return selector.NewElitism[string](size), nil
	case config.SelectorRank:
		return selector.NewRank[string](size, rng), nil
	case config.SelectorTournament:
		return selector.NewTournament[string](size, cfg.GetInt(config.ConfigTournamentSize), rng), nil
	case config.SelectorBestAndRand:
		return selector.NewBestAndRand[string](cfg.GetInt(config.ConfigBestPop), cfg.GetInt(config.ConfigRandPop), rng), nil
	}
	return nil, fmt.Errorf("%w: unknown selector %q", config.ErrInvalidConfig, name)
}

// stopping bundles the criteria of a run so the reason it stopped can be
// told afterwards.
type stopping struct {
	mark       criterion.Mark
	plateau    *criterion.Plateau
	iterations *criterion.Iterations
}

func newStopping(cfg *config.Config, maxScore float64) *stopping {
	s := &stopping{mark: criterion.Mark{Threshold: cfg.GetFloat64(config.ConfigTarget)}}
	if s.mark.Threshold == 0 {
		s.mark.Threshold = maxScore
		log.Info().Float64("target", maxScore).Msg("using the evaluator's maximum score as target")
	}
	if n := cfg.GetInt(config.ConfigPlateau); n > 0 {
		s.plateau = criterion.NewPlateau(n)
	}
	if n := cfg.GetInt(config.ConfigMaxGenerations); n > 0 {
		s.iterations = criterion.NewIterations(n)
	}
	return s
}

// reset clears the state the plateau and iteration counters carry over
// from a previous run.
func (s *stopping) reset() {
	if s.plateau != nil {
		s.plateau.Reset()
	}
	if s.iterations != nil {
		s.iterations.Reset()
	}
}

func (s *stopping) criterion() evolution.Criterion {
	all := criterion.Any{s.mark}
	if s.plateau != nil {
		all = append(all, s.plateau)
	}
	if s.iterations != nil {
		all = append(all, s.iterations)
	}
	return all
}

func (s *stopping) reason(bestRating float64) string {
	switch {
	case bestRating >= s.mark.Threshold:
		return StopTarget
	case s.plateau != nil && s.plateau.Stagnant() >= s.plateau.Max:
		return StopPlateau
	}
	return StopMaxGenerations
}
