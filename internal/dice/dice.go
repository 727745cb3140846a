package dice

import (
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// RollResult is the outcome of one roll
type RollResult struct {
	Total int
	Rolls []int
	Bonus int
	Count int
	Sides int
}

// RawTotal is the total without the bonus
func (r *RollResult) RawTotal() int {
	return r.Total - r.Bonus
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("%d (%dd%d%+d: %s)", r.Total, r.Count, r.Sides, r.Bonus, compact)
}

// Expression is a parsed dice notation such as 2d6+3
type Expression struct {
	Count int
	Sides int
	Bonus int
}

func (e Expression) String() string {
	if e.Bonus == 0 {
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", e.Count, e.Sides, e.Bonus)
}

// Max is the highest total the expression can produce
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Bonus
}

// Roll rolls the expression with r
func (e Expression) Roll(r Roller) (*RollResult, error) {
	return r.Roll(e.Count, e.Sides, e.Bonus)
}

// Parse reads NdS, NdS+B or NdS-B. A bare number is a constant.
func Parse(notation string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(notation))
	if s == "" {
		return Expression{}, apperr.InvalidArgument("empty dice notation")
	}

	if n, err := strconv.Atoi(s); err == nil {
		return Expression{Bonus: n}, nil
	}

	var bonus int
	dice := s
	if idx := strings.LastIndexAny(s, "+-"); idx > 0 {
		b, err := strconv.Atoi(s[idx:])
		if err != nil {
			return Expression{}, apperr.InvalidArgumentf("invalid dice bonus in %q", notation)
		}
		bonus = b
		dice = s[:idx]
	}

	parts := strings.Split(dice, "d")
	if len(parts) != 2 {
		return Expression{}, apperr.InvalidArgumentf("invalid dice notation %q", notation)
	}

	count := 1
	if parts[0] != "" {
		c, err := strconv.Atoi(parts[0])
		if err != nil {
			return Expression{}, apperr.InvalidArgumentf("invalid dice count in %q", notation)
		}
		count = c
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Expression{}, apperr.InvalidArgumentf("invalid dice size in %q", notation)
	}
	if count < 1 || sides < 1 {
		return Expression{}, apperr.InvalidArgumentf("dice count and size must be positive in %q", notation)
	}

	return Expression{Count: count, Sides: sides, Bonus: bonus}, nil
}

// MustParse panics on invalid notation
func MustParse(notation string) Expression {
	e, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return e
}
