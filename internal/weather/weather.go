// Package weather provides the weather sources an airport can be wired with.
package weather

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Supported source modes.
const (
	ModeRandom = "random"
	ModeClear  = "clear"
	ModeStormy = "stormy"
)

// Fixed reports the same condition forever.
type Fixed bool

const (
	Clear = Fixed(false)
	Storm = Fixed(true)
)

func (f Fixed) Stormy() bool { return bool(f) }

// Random is stormy with probability chance on every consultation.
type Random struct {
	mu     sync.Mutex
	rng    *rand.Rand
	chance float64
}

// NewRandom creates a random source. The same seed replays the same weather.
func NewRandom(chance float64, seed uint64) *Random {
	return &Random{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		chance: chance,
	}
}

func (r *Random) Stormy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < r.chance
}

// Sequence replays scripted conditions in order and then keeps reporting the
// last one. An empty sequence is always clear.
type Sequence struct {
	mu         sync.Mutex
	conditions []bool
	next       int
}

func NewSequence(conditions ...bool) *Sequence {
	return &Sequence{conditions: conditions}
}

func (s *Sequence) Stormy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.conditions) == 0 {
		return false
	}
	i := min(s.next, len(s.conditions)-1)
	s.next++
	return s.conditions[i]
}

// New builds the source for mode. A zero seed is replaced by the clock's
// current time so unseeded services do not repeat the same weather.
func New(mode string, chance float64, seed uint64, clk clockwork.Clock) (domain.Weather, error) {
	switch mode {
	case ModeClear:
		return Clear, nil
	case ModeStormy:
		return Storm, nil
	case ModeRandom:
		if chance < 0 || chance > 1 {
			return nil, fmt.Errorf("storm chance %g outside [0, 1]", chance)
		}
		if seed == 0 {
			seed = uint64(clk.Now().UnixNano())
		}
		return NewRandom(chance, seed), nil
	default:
		return nil, fmt.Errorf("unknown weather mode %q", mode)
	}
}

// ParseCondition maps "clear" / "stormy" to the stormy flag.
func ParseCondition(s string) (bool, error) {
	switch s {
	case ModeClear:
		return false, nil
	case ModeStormy:
		return true, nil
	default:
		return false, fmt.Errorf("unknown weather condition %q", s)
	}
}
