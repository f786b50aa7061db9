package domain

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// DefaultCapacity is used when an airport is created without WithCapacity.
const DefaultCapacity = 20

// Weather reports whether conditions currently forbid movements.
type Weather interface {
	Stormy() bool
}

// Airport holds a bounded set of parked planes and gates every movement on
// capacity and weather.
type Airport struct {
	name     string
	capacity int
	planes   map[string]struct{}
	weather  Weather
	out      io.Writer
}

// Option configures an Airport.
type Option func(*Airport)

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(a *Airport) {
		a.capacity = n
	}
}

// WithOutput sets where confirmation messages and forecasts are written.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Airport) {
		a.out = w
	}
}

// NewAirport creates an empty airport. A nil weather source is treated as
// permanently clear.
func NewAirport(name string, weather Weather, opts ...Option) *Airport {
	a := &Airport{
		name:     name,
		capacity: DefaultCapacity,
		planes:   make(map[string]struct{}),
		weather:  weather,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Airport) Name() string { return a.name }

func (a *Airport) Capacity() int { return a.capacity }

// Occupancy returns the number of parked planes.
func (a *Airport) Occupancy() int { return len(a.planes) }

// Has reports whether the named plane is parked here.
func (a *Airport) Has(name string) bool {
	_, ok := a.planes[name]
	return ok
}

// Planes returns the names of the parked planes in sorted order.
func (a *Airport) Planes() []string {
	names := make([]string, 0, len(a.planes))
	for name := range a.planes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stormy consults the weather source.
func (a *Airport) Stormy() bool {
	if a.weather == nil {
		return false
	}
	return a.weather.Stormy()
}

// Land parks an airborne plane. Checks run in a fixed order: already parked
// here, not airborne, full, stormy. The weather is only consulted when every
// other check passes.
func (a *Airport) Land(p *Plane) (string, error) {
	switch {
	case a.Has(p.name):
		return "", newOperationError(ReasonAlreadyLanded, p.name)
	case !p.location.IsInAir():
		return "", newOperationError(ReasonNotInAir, p.name)
	case len(a.planes) >= a.capacity:
		return "", newOperationError(ReasonAirportFull, p.name)
	case a.Stormy():
		return "", newOperationError(ReasonStormyLanding, p.name)
	}

	a.planes[p.name] = struct{}{}
	p.location = AtAirport(a.name)

	return a.emit(fmt.Sprintf("The %s landed succesfully", p.name)), nil
}

// TakeOff releases a plane parked at this airport back into the air.
func (a *Airport) TakeOff(p *Plane) (string, error) {
	switch {
	case !a.Has(p.name):
		return "", newOperationError(ReasonNotAtAirport, p.name)
	case a.Stormy():
		return "", newOperationError(ReasonStormyTakeOff, p.name)
	}

	delete(a.planes, p.name)
	p.location = InAir()

	return a.emit(fmt.Sprintf("The %s took off succesfully", p.name)), nil
}

// ChangeCapacity sets the capacity without validating it against current
// occupancy; an airport shrunk below its occupancy simply refuses landings.
func (a *Airport) ChangeCapacity(n int) {
	a.capacity = n
}

// WeatherForecast emits and returns "Clear" or "Stormy".
func (a *Airport) WeatherForecast() string {
	if a.Stormy() {
		return a.emit("Stormy")
	}
	return a.emit("Clear")
}

func (a *Airport) emit(msg string) string {
	if a.out != nil {
		io.WriteString(a.out, msg) //nolint:errcheck // confirmation output is best-effort
	}
	return msg
}
