package script

import (
	"fmt"
	"strconv"
)

// Command is a side effect requested by a script hook. The owner decides
// what each op means.
type Command struct {
	Op   string
	Args map[string]any
}

// CommandSink applies commands to the entity that owns a scripted ability
type CommandSink interface {
	ApplyCommand(cmd Command) error
}

// AttributeSource exposes extra owner state to scripts as owner.<key>
type AttributeSource interface {
	ScriptAttributes() map[string]any
}

// String returns args[key] as a string
func (c Command) String(key string) string {
	v, ok := c.Args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns args[key] as an int, or def when missing or not numeric
func (c Command) Int(key string, def int) int {
	switch v := c.Args[key].(type) {
	case int:
		return v
	case int64:
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

// Bool returns args[key] as a bool, or def when missing
func (c Command) Bool(key string, def bool) bool {
	if v, ok := c.Args[key].(bool); ok {
		return v
	}
	return def
}
