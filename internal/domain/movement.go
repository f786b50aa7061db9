package domain

import (
	"time"

	"github.com/google/uuid"
)

// MovementKind distinguishes landings from take-offs.
type MovementKind string

const (
	MovementLanded  MovementKind = "landed"
	MovementTookOff MovementKind = "took_off"
)

// Movement records one successful landing or take-off.
type Movement struct {
	ID         string       `json:"id"`
	Kind       MovementKind `json:"kind"`
	Plane      string       `json:"plane"`
	Airport    string       `json:"airport"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewMovement stamps a movement with a fresh ID and the package clock.
func NewMovement(kind MovementKind, plane, airport string) Movement {
	return Movement{
		ID:         uuid.NewString(),
		Kind:       kind,
		Plane:      plane,
		Airport:    airport,
		OccurredAt: clock.Now().UTC(),
	}
}
