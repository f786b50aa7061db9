package tower

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/couchcryptid/airport-control/internal/observability"
)

var (
	// ErrUnknownPlane is returned for operations on a plane that was never registered.
	ErrUnknownPlane = errors.New("unknown plane")
	// ErrInvalidPlaneName is returned when registering a blank name.
	ErrInvalidPlaneName = errors.New("plane name is required")
)

// Publisher announces successful movements to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, m domain.Movement) error
}

// PlaneView is a read-only snapshot of a registered plane.
type PlaneView struct {
	Name     string          `json:"name"`
	Location domain.Location `json:"location"`
}

// Status is a snapshot of the airport and every registered plane.
type Status struct {
	Airport  string      `json:"airport"`
	Capacity int         `json:"capacity"`
	Parked   []string    `json:"parked"`
	Planes   []PlaneView `json:"planes"`
}

// Tower serialises access to one airport and the planes known to it, and
// reports every outcome through logs, metrics and the optional publisher.
type Tower struct {
	mu        sync.Mutex
	airport   *domain.Airport
	planes    map[string]*domain.Plane
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Tower. Pass a nil publisher to disable movement publishing.
func New(airport *domain.Airport, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Tower {
	metrics.Capacity.Set(float64(airport.Capacity()))
	metrics.PlanesParked.Set(float64(airport.Occupancy()))
	return &Tower{
		airport:   airport,
		planes:    make(map[string]*domain.Plane),
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil while the airport can accept landings.
func (t *Tower) CheckReadiness(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.airport.Capacity() <= 0 {
		return errors.New("airport has no capacity")
	}
	return nil
}

// Register adds an airborne plane. Registering an existing name returns the
// current plane and created=false.
func (t *Tower) Register(_ context.Context, name string) (PlaneView, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PlaneView{}, false, ErrInvalidPlaneName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.planes[name]; ok {
		return viewOf(p), false, nil
	}
	p := domain.NewPlane(name)
	t.planes[name] = p
	t.logger.Info("plane registered", "plane", name)
	return viewOf(p), true, nil
}

// Plane returns a snapshot of a registered plane.
func (t *Tower) Plane(_ context.Context, name string) (PlaneView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.planes[name]
	if !ok {
		return PlaneView{}, fmt.Errorf("%w: %s", ErrUnknownPlane, name)
	}
	return viewOf(p), nil
}

// Land lands a registered plane and returns the confirmation message.
func (t *Tower) Land(ctx context.Context, name string) (string, error) {
	return t.move(ctx, name, "land", domain.MovementLanded, t.airport.Land)
}

// TakeOff sends a parked plane back into the air and returns the confirmation message.
func (t *Tower) TakeOff(ctx context.Context, name string) (string, error) {
	return t.move(ctx, name, "take_off", domain.MovementTookOff, t.airport.TakeOff)
}

func (t *Tower) move(ctx context.Context, name, operation string, kind domain.MovementKind, op func(*domain.Plane) (string, error)) (string, error) {
	t.mu.Lock()
	p, ok := t.planes[name]
	if !ok {
		t.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrUnknownPlane, name)
	}

	msg, err := op(p)
	occupancy := t.airport.Occupancy()
	if err == nil {
		// Updated under the lock so the gauge never lags a later movement.
		t.metrics.Movements.WithLabelValues(string(kind)).Inc()
		t.metrics.PlanesParked.Set(float64(occupancy))
	}
	t.mu.Unlock()

	if err != nil {
		reason, _ := domain.ReasonOf(err)
		t.metrics.Rejections.WithLabelValues(operation, string(reason)).Inc()
		t.logger.Warn("movement refused",
			"operation", operation,
			"plane", name,
			"reason", reason,
			"error", err,
		)
		return "", err
	}

	t.logger.Info("movement completed", "operation", operation, "plane", name, "parked", occupancy, "message", msg)

	t.publish(ctx, domain.NewMovement(kind, name, t.airport.Name()))
	return msg, nil
}

// publish never undoes a movement; failures are logged and counted.
func (t *Tower) publish(ctx context.Context, m domain.Movement) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.Publish(ctx, m); err != nil {
		t.metrics.PublishErrors.Inc()
		t.logger.Warn("publish movement failed",
			"movement_id", m.ID,
			"kind", m.Kind,
			"plane", m.Plane,
			"error", err,
		)
	}
}

// ChangeCapacity sets the airport capacity and returns the new value.
func (t *Tower) ChangeCapacity(_ context.Context, n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.airport.Capacity()
	t.airport.ChangeCapacity(n)
	t.metrics.Capacity.Set(float64(n))
	t.logger.Info("capacity changed", "from", previous, "to", n, "parked", t.airport.Occupancy())
	return t.airport.Capacity()
}

// Forecast returns "Clear" or "Stormy".
func (t *Tower) Forecast(_ context.Context) string {
	t.mu.Lock()
	forecast := t.airport.WeatherForecast()
	t.mu.Unlock()

	t.metrics.Forecasts.WithLabelValues(strings.ToLower(forecast)).Inc()
	t.logger.Debug("weather forecast", "forecast", forecast)
	return forecast
}

// Status returns the airport occupancy and every registered plane sorted by name.
func (t *Tower) Status(_ context.Context) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	planes := make([]PlaneView, 0, len(t.planes))
	for _, p := range t.planes {
		planes = append(planes, viewOf(p))
	}
	slices.SortFunc(planes, func(a, b PlaneView) int { return strings.Compare(a.Name, b.Name) })

	return Status{
		Airport:  t.airport.Name(),
		Capacity: t.airport.Capacity(),
		Parked:   t.airport.Planes(),
		Planes:   planes,
	}
}

func viewOf(p *domain.Plane) PlaneView {
	return PlaneView{Name: p.Name(), Location: p.Location()}
}
