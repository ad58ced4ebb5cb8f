package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Path adds a file path field.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", p)
	}
}

// Dimensions adds width and height fields.
func Dimensions(width, height int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("width", width).Int("height", height)
	}
}

// Engine adds the imaging engine name.
func Engine(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("engine", name)
	}
}

// ToolName adds an MCP tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// Method adds a JSON-RPC method field.
func Method(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("method", name)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Live adds the number of decoded images still held by an engine.
func Live(n int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("live", n)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an int field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
