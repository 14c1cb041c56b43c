package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	Paths        Paths
	AngleMode    string
	HistoryLimit int
	Precision    int
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", DefaultDataDir)
	v.SetDefault("history.limit", DefaultHistoryLimit)
	v.SetDefault("display.precision", DefaultPrecision)
	v.SetDefault("scientific.angle_mode", DefaultAngleMode)
}

// LoadSettings reads the settings from Viper.
// It follows this precedence:
// 1. Flags bound to Viper
// 2. CALC_ environment variables
// 3. Config file
// 4. Default values
func LoadSettings(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		Paths:        NewPaths(v.GetString("data.dir")),
		HistoryLimit: v.GetInt("history.limit"),
		Precision:    v.GetInt("display.precision"),
		AngleMode:    v.GetString("scientific.angle_mode"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	if s.HistoryLimit <= 0 {
		return fmt.Errorf("history.limit must be positive, got %d", s.HistoryLimit)
	}
	if s.Precision < 0 || s.Precision > 15 {
		return fmt.Errorf("display.precision must be between 0 and 15, got %d", s.Precision)
	}
	switch s.AngleMode {
	case "degrees", "radians":
	default:
		return fmt.Errorf("scientific.angle_mode must be degrees or radians, got %q", s.AngleMode)
	}
	return nil
}
