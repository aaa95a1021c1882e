package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	DatabaseURL string
	TuningPath  string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TuningPath:  os.Getenv("TUNING_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Tuning holds the match parameters an operator may override per deployment.
// Physics constants stay compiled in; only lifecycle timing, room sizing and
// the wager multiplier table are tunable.
type Tuning struct {
	RoomSize          int       `yaml:"roomSize"`
	CountdownSecs     int       `yaml:"countdownSecs"`
	RoundSecs         int       `yaml:"roundSecs"`
	BackfillWaitSecs  int       `yaml:"backfillWaitSecs"`
	StartDelaySecs    int       `yaml:"startDelaySecs"`
	TeardownDelaySecs int       `yaml:"teardownDelaySecs"`
	Multipliers       []float64 `yaml:"multipliers"`
}

func DefaultTuning() Tuning {
	return Tuning{
		RoomSize:          4,
		CountdownSecs:     3,
		RoundSecs:         60,
		BackfillWaitSecs:  10,
		StartDelaySecs:    2,
		TeardownDelaySecs: 5,
		Multipliers:       []float64{1.5, 2.0, 2.5, 3.0, 4.0},
	}
}

// LoadTuning reads a YAML tuning file over the defaults. An empty path
// returns the defaults unchanged.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, fmt.Errorf("parsing tuning file: %w", err)
	}
	if err := tuning.validate(); err != nil {
		return tuning, fmt.Errorf("invalid tuning file %s: %w", path, err)
	}
	return tuning, nil
}

func (t Tuning) validate() error {
	if t.RoomSize < 2 {
		return fmt.Errorf("roomSize %d: need at least 2", t.RoomSize)
	}
	if t.CountdownSecs < 1 || t.RoundSecs < 1 {
		return fmt.Errorf("countdownSecs and roundSecs must be positive")
	}
	if len(t.Multipliers) == 0 {
		return fmt.Errorf("multipliers table is empty")
	}
	for i, m := range t.Multipliers {
		if m <= 0 {
			return fmt.Errorf("multiplier for round %d is %v, must be positive", i+1, m)
		}
	}
	return nil
}
