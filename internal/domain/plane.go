package domain

import "fmt"

// LocationKind tags where a plane currently is.
type LocationKind int

const (
	// LocationInAir means the plane is airborne and may land anywhere.
	LocationInAir LocationKind = iota
	// LocationAtAirport means the plane is parked at the airport named in Location.Airport.
	LocationAtAirport
)

// Location is a tagged value: Airport is only meaningful for LocationAtAirport.
type Location struct {
	Kind    LocationKind
	Airport string
}

// InAir returns the airborne location.
func InAir() Location {
	return Location{Kind: LocationInAir}
}

// AtAirport returns the location of a plane parked at the named airport.
func AtAirport(name string) Location {
	return Location{Kind: LocationAtAirport, Airport: name}
}

// IsInAir reports whether the plane is airborne.
func (l Location) IsInAir() bool {
	return l.Kind == LocationInAir
}

func (l Location) String() string {
	if l.Kind == LocationAtAirport {
		return fmt.Sprintf("at_airport(%s)", l.Airport)
	}
	return "in_air"
}

// MarshalText renders the location in its String form for JSON payloads.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Plane is referenced by airports but never owned by them. Its location is
// only changed by Airport.Land and Airport.TakeOff.
type Plane struct {
	name     string
	location Location
}

// NewPlane creates an airborne plane.
func NewPlane(name string) *Plane {
	return &Plane{name: name, location: InAir()}
}

// NewPlaneAt creates a plane with an explicit starting location.
func NewPlaneAt(name string, location Location) *Plane {
	return &Plane{name: name, location: location}
}

func (p *Plane) Name() string { return p.name }

func (p *Plane) Location() Location { return p.location }
