package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller rolls dice. Abilities take one so tests can script the results.
type Roller interface {
	// Roll rolls count dice with the given sides and adds bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}
