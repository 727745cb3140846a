package dice

import (
	"math/rand"
	"sync"

	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// randomRoller implements Roller with a seeded source so a simulation
// can be replayed
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded with seed
func NewRandomRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 0 {
		return nil, apperr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 && count > 0 {
		return nil, apperr.InvalidArgumentf("invalid dice size %d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := &RollResult{
		Total: bonus,
		Rolls: make([]int, count),
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}
	for i := 0; i < count; i++ {
		roll := r.rng.Intn(sides) + 1
		result.Rolls[i] = roll
		result.Total += roll
	}

	return result, nil
}
