// FILE: nsdebug/src/internal/mode/minimal.go
package mode

import "nsdebug/src/internal/value"

// Keys kept by minimal mode, in output order
var minimalKeys = []string{"duration", "elapsed", "timing", "error", "status", "count"}

// Minimal persists timing signals only and strips payloads to an allow-list
type Minimal struct{}

func NewMinimal() *Minimal {
	return &Minimal{}
}

func (m *Minimal) Name() string {
	return NameMinimal
}

func (m *Minimal) Accept(namespace string, data *value.Value) bool {
	if namespace == "performance" || namespace == "timing" {
		return true
	}
	if data == nil || data.Kind() != value.KindObject {
		return false
	}
	return data.Has("duration") || data.Has("elapsed")
}

func (m *Minimal) Shape(data value.Value) (value.Value, bool) {
	if data.Kind() != value.KindObject {
		return value.Value{}, false
	}

	var kept []value.Member
	for _, key := range minimalKeys {
		if v, ok := data.Get(key); ok {
			kept = append(kept, value.Member{Key: key, Value: v})
		}
	}
	if len(kept) == 0 {
		return value.Value{}, false
	}
	return value.Object(kept...), true
}
