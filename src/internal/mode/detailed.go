// FILE: nsdebug/src/internal/mode/detailed.go
package mode

import "nsdebug/src/internal/value"

// Truncation limits for detailed mode
const (
	MaxDepth        = 3
	MaxArrayItems   = 5
	MaxObjectKeys   = 11
	MaxStringLength = 200

	DepthMarker    = "[Max depth reached]"
	TruncatedKey   = "…"
	TruncatedValue = "truncated"
	StringSuffix   = "…"
)

// Namespaces dropped by detailed mode
var noisyNamespaces = map[string]bool{
	"trace":   true,
	"verbose": true,
	"debug":   true,
}

// Detailed drops noisy namespaces and bounds payload size
type Detailed struct{}

func NewDetailed() *Detailed {
	return &Detailed{}
}

func (d *Detailed) Name() string {
	return NameDetailed
}

func (d *Detailed) Accept(namespace string, _ *value.Value) bool {
	return !noisyNamespaces[namespace]
}

func (d *Detailed) Shape(data value.Value) (value.Value, bool) {
	return truncate(data, 0), true
}

// truncate walks the value once; the root sits at depth 0
func truncate(v value.Value, depth int) value.Value {
	switch v.Kind() {
	case value.KindArray:
		if depth >= MaxDepth {
			return value.String(DepthMarker)
		}
		items := v.Items()
		if len(items) > MaxArrayItems {
			items = items[:MaxArrayItems]
		}
		for i := range items {
			items[i] = truncate(items[i], depth+1)
		}
		return value.Array(items...)

	case value.KindObject:
		if depth >= MaxDepth {
			return value.String(DepthMarker)
		}
		members := v.Members()
		if len(members) > MaxObjectKeys {
			members = append(members[:MaxObjectKeys-1], value.Member{
				Key:   TruncatedKey,
				Value: value.String(TruncatedValue),
			})
			for i := 0; i < MaxObjectKeys-1; i++ {
				members[i].Value = truncate(members[i].Value, depth+1)
			}
			return value.Object(members...)
		}
		for i := range members {
			members[i].Value = truncate(members[i].Value, depth+1)
		}
		return value.Object(members...)

	case value.KindString:
		s, _ := v.Str()
		if len(s) <= MaxStringLength {
			return v
		}
		runes := []rune(s)
		if len(runes) > MaxStringLength {
			return value.String(string(runes[:MaxStringLength]) + StringSuffix)
		}
		return v

	default:
		return v
	}
}
