package lambert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"
)

// Scenario defines a transfer problem read from a TOML scenario file. The
// time of flight is either set directly ([transfer] tof) or derived from the
// departure and arrival epochs given as Julian dates.
type Scenario struct {
	Name      string
	Body      CelestialObject
	R1, R2    *mat64.Vector // km
	Δt        time.Duration
	Direction TransferDirection
	Steps     int // RK4 steps of the propagation cross-check
}

// LoadScenario reads the provided TOML scenario file.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.AddConfigPath(filepath.Dir(path))
	v.SetConfigName(strings.TrimSuffix(filepath.Base(path), ".toml"))
	v.SetDefault("body.name", "Earth")
	v.SetDefault("transfer.direction", "prograde")
	v.SetDefault("propagation.steps", DefaultSteps)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("could not read scenario %s: %s", path, err)
	}
	body, err := CelestialObjectFromString(v.GetString("body.name"))
	if err != nil {
		return Scenario{}, err
	}
	R1, err := confVector(v, "transfer.r1")
	if err != nil {
		return Scenario{}, err
	}
	R2, err := confVector(v, "transfer.r2")
	if err != nil {
		return Scenario{}, err
	}
	Δt, err := confTimeOfFlight(v)
	if err != nil {
		return Scenario{}, err
	}
	var dir TransferDirection
	switch strings.ToLower(v.GetString("transfer.direction")) {
	case "prograde":
		dir = Prograde
	case "retrograde":
		dir = Retrograde
	default:
		return Scenario{}, fmt.Errorf("transfer.direction must be prograde or retrograde: %w", ErrInvalidInput)
	}
	steps := v.GetInt("propagation.steps")
	if steps <= 0 {
		return Scenario{}, fmt.Errorf("propagation.steps=%d must be strictly positive: %w", steps, ErrInvalidInput)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".toml")
	return Scenario{name, body, R1, R2, Δt, dir, steps}, nil
}

// confVector reads a 3 component vector from the configuration.
func confVector(v *viper.Viper, key string) (*mat64.Vector, error) {
	raw, ok := v.Get(key).([]interface{})
	if !ok || len(raw) != 3 {
		return nil, fmt.Errorf("%s must be a 3 component vector: %w", key, ErrInvalidInput)
	}
	data := make([]float64, 3)
	for i, val := range raw {
		switch x := val.(type) {
		case float64:
			data[i] = x
		case int64:
			data[i] = float64(x)
		case int:
			data[i] = float64(x)
		default:
			return nil, fmt.Errorf("%s[%d] is not a number: %w", key, i, ErrInvalidInput)
		}
	}
	return mat64.NewVector(3, data), nil
}

// confTimeOfFlight returns the time of flight, set either directly or as the
// duration between the departure and arrival Julian dates.
func confTimeOfFlight(v *viper.Viper) (time.Duration, error) {
	if v.IsSet("transfer.tof") {
		return v.GetDuration("transfer.tof"), nil
	}
	if !v.IsSet("transfer.departure") || !v.IsSet("transfer.arrival") {
		return 0, fmt.Errorf("either transfer.tof or both transfer.departure and transfer.arrival epochs are needed: %w", ErrInvalidInput)
	}
	dep := julian.JDToTime(v.GetFloat64("transfer.departure"))
	arr := julian.JDToTime(v.GetFloat64("transfer.arrival"))
	if !arr.After(dep) {
		return 0, fmt.Errorf("arrival %s is before departure %s: %w", arr, dep, ErrInvalidInput)
	}
	return arr.Sub(dep), nil
}
