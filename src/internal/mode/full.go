// FILE: nsdebug/src/internal/mode/full.go
package mode

import "nsdebug/src/internal/value"

// Full persists everything unchanged
type Full struct{}

func NewFull() *Full {
	return &Full{}
}

func (f *Full) Name() string {
	return NameFull
}

func (f *Full) Accept(string, *value.Value) bool {
	return true
}

func (f *Full) Shape(data value.Value) (value.Value, bool) {
	return data, true
}
