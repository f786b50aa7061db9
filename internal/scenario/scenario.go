// Package scenario loads scripted airport sessions from YAML and replays them
// against a control tower.
//
// A scenario names the airport, its capacity, the weather conditions the
// airport will observe in order, and a list of steps:
//
//	airport: LHR
//	capacity: 1
//	weather: [clear, clear, stormy]
//	planes: [jumbo, cessna]
//	steps:
//	  - action: land
//	    plane: jumbo
//	  - action: land
//	    plane: cessna
//	    expect_error: airport_full
//	  - action: capacity
//	    capacity: 5
//	  - action: forecast
//
// The weather list is consumed once per consultation and its last entry
// repeats. Landings only consult the weather after every other check passes.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/couchcryptid/airport-control/internal/tower"
	"github.com/couchcryptid/airport-control/internal/weather"
	"gopkg.in/yaml.v3"
)

// Step actions.
const (
	ActionRegister = "register"
	ActionLand     = "land"
	ActionTakeOff  = "take_off"
	ActionCapacity = "capacity"
	ActionForecast = "forecast"
)

// ReasonUnknownPlane is the expect_error value for operations on an unregistered plane.
const ReasonUnknownPlane = "unknown_plane"

// Scenario is a scripted airport session.
type Scenario struct {
	Airport  string   `yaml:"airport"`
	Capacity int      `yaml:"capacity"`
	Weather  []string `yaml:"weather"`
	Planes   []string `yaml:"planes"`
	Steps    []Step   `yaml:"steps"`
}

// Step is one scripted operation. ExpectError names the refusal reason the
// step must produce; empty means the step must succeed.
type Step struct {
	Action      string `yaml:"action"`
	Plane       string `yaml:"plane,omitempty"`
	Capacity    int    `yaml:"capacity,omitempty"`
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document, applying defaults.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Airport == "" {
		s.Airport = "LHR"
	}
	if s.Capacity == 0 {
		s.Capacity = domain.DefaultCapacity
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}
	for i, c := range s.Weather {
		if _, err := weather.ParseCondition(c); err != nil {
			return fmt.Errorf("weather[%d]: %w", i, err)
		}
	}
	if len(s.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	for i, step := range s.Steps {
		switch step.Action {
		case ActionRegister, ActionLand, ActionTakeOff:
			if strings.TrimSpace(step.Plane) == "" {
				return fmt.Errorf("step %d: %s requires a plane", i+1, step.Action)
			}
		case ActionCapacity:
			if step.Capacity < 0 {
				return fmt.Errorf("step %d: capacity must not be negative", i+1)
			}
		case ActionForecast:
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return nil
}

// NewAirport builds the airport described by the scenario, driven by its
// scripted weather.
func (s *Scenario) NewAirport(out io.Writer) *domain.Airport {
	conditions := make([]bool, len(s.Weather))
	for i, c := range s.Weather {
		conditions[i], _ = weather.ParseCondition(c)
	}
	return domain.NewAirport(s.Airport, weather.NewSequence(conditions...),
		domain.WithCapacity(s.Capacity),
		domain.WithOutput(out),
	)
}

// Outcome records what one step did.
type Outcome struct {
	Step     int
	Action   string
	Plane    string
	Message  string
	Reason   string
	Expected string
	Passed   bool
}

// Report summarises a run.
type Report struct {
	Outcomes []Outcome
	Failed   int
}

// Run registers the scenario's planes and replays its steps in order. It
// never stops early; expectation mismatches are counted in Report.Failed.
func Run(ctx context.Context, s *Scenario, t *tower.Tower) (Report, error) {
	for _, name := range s.Planes {
		if _, _, err := t.Register(ctx, name); err != nil {
			return Report{}, fmt.Errorf("register %q: %w", name, err)
		}
	}

	report := Report{Outcomes: make([]Outcome, 0, len(s.Steps))}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		msg, err := apply(ctx, t, step)
		o := Outcome{
			Step:     i + 1,
			Action:   step.Action,
			Plane:    step.Plane,
			Message:  msg,
			Expected: step.ExpectError,
		}
		if err != nil {
			o.Message = err.Error()
			o.Reason = reasonOf(err)
		}
		o.Passed = o.Reason == step.ExpectError
		if !o.Passed {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, o)
	}
	return report, nil
}

func apply(ctx context.Context, t *tower.Tower, step Step) (string, error) {
	switch step.Action {
	case ActionRegister:
		view, _, err := t.Register(ctx, step.Plane)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s registered (%s)", view.Name, view.Location), nil
	case ActionLand:
		return t.Land(ctx, step.Plane)
	case ActionTakeOff:
		return t.TakeOff(ctx, step.Plane)
	case ActionCapacity:
		return fmt.Sprintf("Capacity set to %d", t.ChangeCapacity(ctx, step.Capacity)), nil
	case ActionForecast:
		return t.Forecast(ctx), nil
	default:
		return "", fmt.Errorf("unknown action %q", step.Action)
	}
}

func reasonOf(err error) string {
	if reason, ok := domain.ReasonOf(err); ok {
		return string(reason)
	}
	if errors.Is(err, tower.ErrUnknownPlane) {
		return ReasonUnknownPlane
	}
	return "error"
}
