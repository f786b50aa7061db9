package domain

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlane = "test_plane"

// --- weather stub ---

type stubWeather struct {
	stormy bool
	calls  int
}

func (s *stubWeather) Stormy() bool {
	s.calls++
	return s.stormy
}

func newTestAirport(t *testing.T, stormy bool, opts ...Option) (*Airport, *stubWeather, *bytes.Buffer) {
	t.Helper()
	w := &stubWeather{stormy: stormy}
	out := &bytes.Buffer{}
	opts = append([]Option{WithOutput(out)}, opts...)
	return NewAirport("LHR", w, opts...), w, out
}

// --- Land ---

func TestLand_PrintsConfirmation(t *testing.T) {
	airport, _, out := newTestAirport(t, false)

	msg, err := airport.Land(NewPlane(testPlane))

	require.NoError(t, err)
	assert.Equal(t, "The test_plane landed succesfully", msg)
	assert.Equal(t, "The test_plane landed succesfully", out.String())
}

func TestLand_AddsPlaneAndMovesIt(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	plane := NewPlane(testPlane)

	_, err := airport.Land(plane)

	require.NoError(t, err)
	assert.Contains(t, airport.Planes(), testPlane)
	assert.True(t, airport.Has(testPlane))
	assert.Equal(t, AtAirport("LHR"), plane.Location())
	assert.Equal(t, 1, airport.Occupancy())
}

func TestLand_AlreadyLanded(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	plane := NewPlane(testPlane)
	_, err := airport.Land(plane)
	require.NoError(t, err)

	_, err = airport.Land(plane)

	require.Error(t, err)
	assert.EqualError(t, err, "test_plane already landed in this airport")
	assert.ErrorIs(t, err, ErrAlreadyLanded)
	assert.Equal(t, 1, airport.Occupancy())
}

func TestLand_AlreadyLandedCheckedBeforeLocation(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	_, err := airport.Land(NewPlane(testPlane))
	require.NoError(t, err)

	// A second handle with the same name that still claims to be airborne.
	_, err = airport.Land(NewPlane(testPlane))

	assert.ErrorIs(t, err, ErrAlreadyLanded)
}

func TestLand_NotInAir(t *testing.T) {
	airport, weather, _ := newTestAirport(t, false)
	plane := NewPlaneAt(testPlane, AtAirport("JFK"))

	_, err := airport.Land(plane)

	require.Error(t, err)
	assert.EqualError(t, err, "test_plane is not in the air")
	assert.ErrorIs(t, err, ErrNotInAir)
	assert.Equal(t, AtAirport("JFK"), plane.Location())
	assert.Zero(t, weather.calls, "weather is only consulted once other checks pass")
}

func TestLand_AirportFull(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	airport.ChangeCapacity(1)
	_, err := airport.Land(NewPlane(testPlane))
	require.NoError(t, err)

	second := NewPlane("test_plane1")
	_, err = airport.Land(second)

	require.Error(t, err)
	assert.EqualError(t, err, "Can't land as the airport is full")
	assert.ErrorIs(t, err, ErrAirportFull)
	assert.True(t, second.Location().IsInAir())
	assert.Equal(t, []string{testPlane}, airport.Planes())
}

func TestLand_CapacityShrunkBelowOccupancy(t *testing.T) {
	airport, _, _ := newTestAirport(t, false, WithCapacity(3))
	for _, name := range []string{"a", "b", "c"} {
		_, err := airport.Land(NewPlane(name))
		require.NoError(t, err)
	}

	airport.ChangeCapacity(1)
	_, err := airport.Land(NewPlane("d"))

	assert.ErrorIs(t, err, ErrAirportFull)
	assert.Equal(t, 3, airport.Occupancy())
}

func TestLand_StormyWeather(t *testing.T) {
	airport, _, out := newTestAirport(t, true)
	plane := NewPlane(testPlane)

	_, err := airport.Land(plane)

	require.Error(t, err)
	assert.EqualError(t, err, "Can't land due to stormy weather")
	assert.ErrorIs(t, err, ErrStormyLanding)
	assert.ErrorIs(t, err, ErrStormyWeather)
	assert.NotErrorIs(t, err, ErrStormyTakeOff)
	assert.Empty(t, airport.Planes())
	assert.True(t, plane.Location().IsInAir())
	assert.Empty(t, out.String())
}

func TestLand_StormyRegardlessOfCapacity(t *testing.T) {
	airport, _, _ := newTestAirport(t, true, WithCapacity(100))

	_, err := airport.Land(NewPlane(testPlane))

	assert.ErrorIs(t, err, ErrStormyWeather)
}

// --- TakeOff ---

func TestTakeOff_PrintsConfirmation(t *testing.T) {
	airport, _, out := newTestAirport(t, false)
	plane := NewPlane(testPlane)
	_, err := airport.Land(plane)
	require.NoError(t, err)
	out.Reset()

	msg, err := airport.TakeOff(plane)

	require.NoError(t, err)
	assert.Equal(t, "The test_plane took off succesfully", msg)
	assert.Equal(t, "The test_plane took off succesfully", out.String())
}

func TestTakeOff_RemovesPlaneAndMovesIt(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	plane := NewPlane(testPlane)
	_, err := airport.Land(plane)
	require.NoError(t, err)

	_, err = airport.TakeOff(plane)

	require.NoError(t, err)
	assert.NotContains(t, airport.Planes(), testPlane)
	assert.True(t, plane.Location().IsInAir())
}

func TestTakeOff_NotAtThisAirport(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)

	_, err := airport.TakeOff(NewPlane(testPlane))

	require.Error(t, err)
	assert.EqualError(t, err, "test_plane is not in this aiport")
	assert.ErrorIs(t, err, ErrNotAtAirport)
}

func TestTakeOff_StormyWeather(t *testing.T) {
	airport, weather, _ := newTestAirport(t, false)
	plane := NewPlane(testPlane)
	_, err := airport.Land(plane)
	require.NoError(t, err)

	weather.stormy = true
	_, err = airport.TakeOff(plane)

	require.Error(t, err)
	assert.EqualError(t, err, "Can't take off due to stormy weather")
	assert.ErrorIs(t, err, ErrStormyTakeOff)
	assert.ErrorIs(t, err, ErrStormyWeather)
	assert.True(t, airport.Has(testPlane))
	assert.Equal(t, AtAirport("LHR"), plane.Location())
}

// --- capacity & weather ---

func TestNewAirport_DefaultCapacity(t *testing.T) {
	airport := NewAirport("LHR", nil)
	assert.Equal(t, DefaultCapacity, airport.Capacity())
	assert.Equal(t, "LHR", airport.Name())
}

func TestChangeCapacity(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	airport.ChangeCapacity(5)
	assert.Equal(t, 5, airport.Capacity())
}

func TestWeatherForecast(t *testing.T) {
	tests := []struct {
		name     string
		stormy   bool
		expected string
	}{
		{"clear", false, "Clear"},
		{"stormy", true, "Stormy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			airport, _, out := newTestAirport(t, tt.stormy)
			assert.Equal(t, tt.expected, airport.WeatherForecast())
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestNilWeatherIsClear(t *testing.T) {
	airport := NewAirport("LHR", nil, WithOutput(&bytes.Buffer{}))
	assert.False(t, airport.Stormy())

	_, err := airport.Land(NewPlane(testPlane))
	assert.NoError(t, err)
}

// --- errors ---

func TestReasonOf(t *testing.T) {
	airport, _, _ := newTestAirport(t, false)
	_, err := airport.TakeOff(NewPlane(testPlane))

	reason, ok := ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonNotAtAirport, reason)

	_, ok = ReasonOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "in_air", InAir().String())
	assert.Equal(t, "at_airport(LHR)", AtAirport("LHR").String())
}
