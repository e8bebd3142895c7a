package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigFile             = "config"
	ConfigSecret           = "secret"
	ConfigEvaluator        = "evaluator"
	ConfigAlphabet         = "alphabet"
	ConfigPopSize          = "pop-size"
	ConfigWorkers          = "workers"
	ConfigMutationRate     = "mutation-rate"
	ConfigCharMutationRate = "char-mutation-rate"
	ConfigSeed             = "seed"
	ConfigSelector         = "selector"
	ConfigSelectorSize     = "selector-size"
	ConfigTournamentSize   = "tournament-size"
	ConfigBestPop          = "best-pop"
	ConfigRandPop          = "rand-pop"
	ConfigTarget           = "target"
	ConfigPlateau          = "plateau"
	ConfigMaxGenerations   = "max-generations"
	ConfigGenerationLog    = "generation-log"
	ConfigHistogramBins    = "histogram-bins"
	ConfigDebug            = "debug"
)

const (
	SelectorRating      = "rating"
	SelectorElitism     = "elitism"
	SelectorRank        = "rank"
	SelectorTournament  = "tournament"
	SelectorBestAndRand = "bestandrand"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the layered configuration of an evolve run. Later sources win:
// defaults, config file, GENETIC_* environment variables, flags.
type Config struct {
	*viper.Viper
}

// DefaultConfig returns a configuration holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("evolve", pflag.ContinueOnError)
	fs.String(ConfigFile, "", "optional yaml, toml or json file with settings")
	fs.String(ConfigSecret, "Hello World", "the phrase to evolve towards")
	fs.String(ConfigEvaluator, "basic", "fitness function: basic, motus or levenshtein")
	fs.String(ConfigAlphabet, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 ", "characters candidates are made of")
	fs.Int(ConfigPopSize, 1000, "individuals per generation")
	fs.Int(ConfigWorkers, 8, "parallel evaluation workers")
	fs.Float64(ConfigMutationRate, 0.24, "chance a child is mutated")
	fs.Float64(ConfigCharMutationRate, 0.10, "chance each character of a mutated child is replaced")
	fs.Uint64(ConfigSeed, 0, "random seed; 0 seeds from the system")
	fs.String(ConfigSelector, SelectorTournament, "selector: rating, elitism, rank, tournament or bestandrand")
	fs.Int(ConfigSelectorSize, 200, "parents kept by the selector")
	fs.Int(ConfigTournamentSize, 0, "tournament group size; 0 means the whole population")
	fs.Int(ConfigBestPop, 100, "best individuals kept by bestandrand")
	fs.Int(ConfigRandPop, 100, "random individuals kept by bestandrand")
	fs.Float64(ConfigTarget, 0, "stop once a rating reaches this; 0 uses the evaluator's maximum")
	fs.Int(ConfigPlateau, 0, "stop after this many generations without improvement; 0 disables")
	fs.Int(ConfigMaxGenerations, 0, "stop after this many generations; 0 disables")
	fs.String(ConfigGenerationLog, "", "file to write a per-generation yaml log to")
	fs.Int(ConfigHistogramBins, 10, "bins in the final ratings histogram")
	fs.Bool(ConfigDebug, false, "debug logging on")
	return fs
}

// Load parses args and the environment into a fresh viper instance.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("genetic")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil
}

// SanitizedSettings returns all settings with the secret phrase masked, for
// logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if s, ok := settings[ConfigSecret].(string); ok && s != "" {
		settings[ConfigSecret] = strings.Repeat("*", len([]rune(s)))
	}
	return settings
}

func SelectorNames() []string {
	return []string{SelectorRating, SelectorElitism, SelectorRank, SelectorTournament, SelectorBestAndRand}
}

// Validate checks the settings an evolve run cannot work without.
func (c *Config) Validate() error {
	var errs []error
	if c.GetString(ConfigSecret) == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, ConfigSecret))
	}
	if c.GetString(ConfigAlphabet) == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, ConfigAlphabet))
	}
	if c.GetInt(ConfigPopSize) < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, ConfigPopSize))
	}
	if c.GetInt(ConfigWorkers) < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, ConfigWorkers))
	}
	for _, k := range []string{ConfigMutationRate, ConfigCharMutationRate} {
		if r := c.GetFloat64(k); r < 0 || r > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be within [0, 1]", ErrInvalidConfig, k))
		}
	}
	if !lo.Contains(SelectorNames(), c.GetString(ConfigSelector)) {
		errs = append(errs, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, ConfigSelector, c.GetString(ConfigSelector)))
	}
	for _, k := range []string{ConfigPlateau, ConfigMaxGenerations, ConfigTournamentSize} {
		if c.GetInt(k) < 0 {
			errs = append(errs, fmt.Errorf("%w: %s cannot be negative", ErrInvalidConfig, k))
		}
	}
	if c.GetInt(ConfigHistogramBins) < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1", ErrInvalidConfig, ConfigHistogramBins))
	}
	return errors.Join(errs...)
}
