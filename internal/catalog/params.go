package catalog

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/ability-engine/internal/dice"
)

// Params is the free-form params block of a catalog entry
type Params map[string]any

// String returns params[key] as a string, or def
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns params[key] as an int, or def
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns params[key] as a bool, or def
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// Dice parses params[key] as dice notation, falling back to def
func (p Params) Dice(key, def string) (dice.Expression, error) {
	return dice.Parse(p.String(key, def))
}
