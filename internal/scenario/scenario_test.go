package scenario

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/couchcryptid/airport-control/internal/observability"
	"github.com/couchcryptid/airport-control/internal/tower"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTower(s *Scenario, out io.Writer) *tower.Tower {
	return tower.New(s.NewAirport(out), nil, discardLogger(), observability.NewMetricsForTesting())
}

func TestLoad_BusyDay(t *testing.T) {
	s, err := Load("testdata/busy_day.yaml")
	require.NoError(t, err)

	assert.Equal(t, "LHR", s.Airport)
	assert.Equal(t, 1, s.Capacity)
	assert.Equal(t, []string{"jumbo", "cessna"}, s.Planes)
	assert.Len(t, s.Steps, 9)
	assert.Equal(t, Step{Action: ActionLand, Plane: "jumbo", ExpectError: "already_landed"}, s.Steps[1])
}

func TestRun_BusyDay(t *testing.T) {
	s, err := Load("testdata/busy_day.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	report, err := Run(context.Background(), s, newTower(s, &out))
	require.NoError(t, err)

	for _, o := range report.Outcomes {
		assert.True(t, o.Passed, "step %d (%s %s): got %q reason %q", o.Step, o.Action, o.Plane, o.Message, o.Reason)
	}
	assert.Zero(t, report.Failed)

	assert.Equal(t, "The jumbo landed succesfully", report.Outcomes[0].Message)
	assert.Equal(t, "Can't land as the airport is full", report.Outcomes[2].Message)
	assert.Equal(t, "Can't take off due to stormy weather", report.Outcomes[3].Message)
	assert.Equal(t, "The jumbo took off succesfully", report.Outcomes[4].Message)
	assert.Equal(t, "Capacity set to 5", report.Outcomes[6].Message)
	assert.Equal(t, "Clear", report.Outcomes[7].Message)

	assert.Equal(t, "The jumbo landed succesfullyThe jumbo took off succesfullyClear", out.String())
}

func TestRun_CountsMismatches(t *testing.T) {
	s, err := Parse([]byte(`
weather: [stormy]
planes: [jumbo]
steps:
  - action: land
    plane: jumbo
  - action: take_off
    plane: jumbo
    expect_error: stormy_weather_on_take_off
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), s, newTower(s, io.Discard))
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.False(t, report.Outcomes[0].Passed)
	assert.Equal(t, string(domain.ReasonStormyLanding), report.Outcomes[0].Reason)
	assert.False(t, report.Outcomes[1].Passed, "plane never landed so take-off is refused for another reason")
	assert.Equal(t, string(domain.ReasonNotAtAirport), report.Outcomes[1].Reason)
	assert.Equal(t, 2, report.Failed)
}

func TestRun_RegisterStep(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - action: register
    plane: jumbo
  - action: land
    plane: jumbo
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), s, newTower(s, io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "jumbo registered (in_air)", report.Outcomes[0].Message)
	assert.Zero(t, report.Failed)
}

func TestRun_CancelledContext(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - action: forecast\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, s, newTower(s, io.Discard))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - action: forecast\n"))
	require.NoError(t, err)

	assert.Equal(t, "LHR", s.Airport)
	assert.Equal(t, domain.DefaultCapacity, s.Capacity)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed yaml", "steps: [", "parse scenario"},
		{"no steps", "airport: LHR\n", "no steps"},
		{"unknown action", "steps:\n  - action: taxi\n", "unknown action"},
		{"land without plane", "steps:\n  - action: land\n", "requires a plane"},
		{"negative capacity", "capacity: -1\nsteps:\n  - action: forecast\n", "capacity"},
		{"negative step capacity", "steps:\n  - action: capacity\n    capacity: -2\n", "capacity"},
		{"bad weather", "weather: [foggy]\nsteps:\n  - action: forecast\n", "weather[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}
