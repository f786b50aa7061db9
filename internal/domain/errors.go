package domain

import (
	"errors"
	"fmt"
)

// Reason identifies why an airport operation was refused.
type Reason string

const (
	ReasonAlreadyLanded Reason = "already_landed"
	ReasonNotInAir      Reason = "not_in_air"
	ReasonAirportFull   Reason = "airport_full"
	ReasonStormyLanding Reason = "stormy_weather_on_land"
	ReasonNotAtAirport  Reason = "not_at_this_airport"
	ReasonStormyTakeOff Reason = "stormy_weather_on_take_off"
)

var (
	ErrAlreadyLanded = errors.New("plane already landed in this airport")
	ErrNotInAir      = errors.New("plane is not in the air")
	ErrAirportFull   = errors.New("airport is full")
	ErrStormyLanding = errors.New("stormy weather on land")
	ErrNotAtAirport  = errors.New("plane is not at this airport")
	ErrStormyTakeOff = errors.New("stormy weather on take off")

	// ErrStormyWeather matches both ErrStormyLanding and ErrStormyTakeOff.
	ErrStormyWeather = errors.New("stormy weather")
)

var sentinels = map[Reason]error{
	ReasonAlreadyLanded: ErrAlreadyLanded,
	ReasonNotInAir:      ErrNotInAir,
	ReasonAirportFull:   ErrAirportFull,
	ReasonStormyLanding: ErrStormyLanding,
	ReasonNotAtAirport:  ErrNotAtAirport,
	ReasonStormyTakeOff: ErrStormyTakeOff,
}

// OperationError is returned by Airport.Land and Airport.TakeOff. Error()
// yields the exact operator-facing message; errors.Is matches the sentinel
// for its Reason.
type OperationError struct {
	Reason Reason
	Plane  string
	msg    string
}

func newOperationError(reason Reason, plane string) *OperationError {
	var msg string
	switch reason {
	case ReasonAlreadyLanded:
		msg = fmt.Sprintf("%s already landed in this airport", plane)
	case ReasonNotInAir:
		msg = fmt.Sprintf("%s is not in the air", plane)
	case ReasonAirportFull:
		msg = "Can't land as the airport is full"
	case ReasonStormyLanding:
		msg = "Can't land due to stormy weather"
	case ReasonNotAtAirport:
		// Spelling is part of the operator-facing contract.
		msg = fmt.Sprintf("%s is not in this aiport", plane)
	case ReasonStormyTakeOff:
		msg = "Can't take off due to stormy weather"
	default:
		msg = fmt.Sprintf("%s: %s", plane, reason)
	}
	return &OperationError{Reason: reason, Plane: plane, msg: msg}
}

func (e *OperationError) Error() string { return e.msg }

func (e *OperationError) Is(target error) bool {
	if target == ErrStormyWeather {
		return e.Reason == ReasonStormyLanding || e.Reason == ReasonStormyTakeOff
	}
	sentinel, ok := sentinels[e.Reason]
	return ok && target == sentinel
}

// ReasonOf extracts the refusal reason from err, if it carries one.
func ReasonOf(err error) (Reason, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason, true
	}
	return "", false
}
