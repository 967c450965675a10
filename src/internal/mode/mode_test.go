// FILE: nsdebug/src/internal/mode/mode_test.go
package mode

import (
	"fmt"
	"strings"
	"testing"

	"nsdebug/src/internal/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name        string
		modeName    string
		expected    string
		expectError bool
	}{
		{name: "Minimal", modeName: "minimal", expected: "minimal"},
		{name: "Detailed", modeName: "detailed", expected: "detailed"},
		{name: "Full", modeName: "full", expected: "full"},
		{name: "DefaultToMinimal", modeName: "", expected: "minimal"},
		{name: "Unknown", modeName: "verbose", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			policy, err := New(tc.modeName)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrUnknownMode)
				assert.Nil(t, policy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, policy.Name())
		})
	}
}

func TestMinimal_Accept(t *testing.T) {
	m := NewMinimal()
	withDuration := mustParse(t, `{"duration":10}`)
	withElapsed := mustParse(t, `{"elapsed":3}`)
	plain := mustParse(t, `{"user":"x"}`)
	array := mustParse(t, `["duration"]`)

	assert.True(t, m.Accept("performance", nil))
	assert.True(t, m.Accept("timing", &plain))
	assert.True(t, m.Accept("api", &withDuration))
	assert.True(t, m.Accept("db", &withElapsed))
	assert.False(t, m.Accept("api", &plain))
	assert.False(t, m.Accept("api", &array))
	assert.False(t, m.Accept("debug", nil))
	assert.False(t, m.Accept("Performance", nil), "namespace match is exact")
}

func TestMinimal_Shape(t *testing.T) {
	m := NewMinimal()

	t.Run("AllowListOnly", func(t *testing.T) {
		in := mustParse(t, `{"user":"bob","status":200,"duration":10,"query":"select","count":3}`)

		out, ok := m.Shape(in)
		require.True(t, ok)
		assert.Equal(t, `{"duration":10,"status":200,"count":3}`, out.String())
		for _, member := range out.Members() {
			assert.Contains(t, minimalKeys, member.Key)
			assert.True(t, in.Has(member.Key))
		}
	})

	t.Run("NoAllowedKeys", func(t *testing.T) {
		_, ok := m.Shape(mustParse(t, `{"user":"bob"}`))
		assert.False(t, ok)
	})

	t.Run("NotAnObject", func(t *testing.T) {
		_, ok := m.Shape(value.Int(5))
		assert.False(t, ok)
	})
}

func TestDetailed_Accept(t *testing.T) {
	d := NewDetailed()
	for _, ns := range []string{"trace", "verbose", "debug"} {
		assert.False(t, d.Accept(ns, nil), ns)
	}
	assert.True(t, d.Accept("api", nil))
	assert.True(t, d.Accept("debug:db", nil))
}

func TestDetailed_Shape(t *testing.T) {
	d := NewDetailed()

	t.Run("DepthFiveTruncatesAtThree", func(t *testing.T) {
		in := mustParse(t, `{"l1":{"l2":{"l3":{"l4":{"l5":"deep"}}},"n":1}}`)

		out, ok := d.Shape(in)
		require.True(t, ok)
		assert.Equal(t, `{"l1":{"l2":{"l3":"[Max depth reached]"},"n":1}}`, out.String())
	})

	t.Run("ArrayOfTwentyKeepsFive", func(t *testing.T) {
		items := make([]value.Value, 20)
		for i := range items {
			items[i] = value.Int(int64(i))
		}

		out, ok := d.Shape(value.Array(items...))
		require.True(t, ok)
		require.Equal(t, value.KindArray, out.Kind())
		assert.Equal(t, 5, out.Len())
		assert.Equal(t, `[0,1,2,3,4]`, out.String())
	})

	t.Run("NestedArraysStillTruncated", func(t *testing.T) {
		in := mustParse(t, `[[1,2,3,4,5,6,7],[[["x"]]]]`)

		out, _ := d.Shape(in)
		assert.Equal(t, `[[1,2,3,4,5],[["[Max depth reached]"]]]`, out.String())
	})

	t.Run("ObjectOfFifteenKeys", func(t *testing.T) {
		members := make([]value.Member, 15)
		for i := range members {
			members[i] = value.Member{Key: fmt.Sprintf("k%02d", i), Value: value.Int(int64(i))}
		}

		out, ok := d.Shape(value.Object(members...))
		require.True(t, ok)
		require.Equal(t, 11, out.Len())

		kept := out.Members()
		for i := 0; i < 10; i++ {
			assert.Equal(t, fmt.Sprintf("k%02d", i), kept[i].Key)
		}
		assert.Equal(t, TruncatedKey, kept[10].Key)
		marker, _ := kept[10].Value.Str()
		assert.Equal(t, TruncatedValue, marker)
	})

	t.Run("ObjectOfElevenKeysUntouched", func(t *testing.T) {
		members := make([]value.Member, 11)
		for i := range members {
			members[i] = value.Member{Key: fmt.Sprintf("k%d", i), Value: value.Bool(true)}
		}

		out, _ := d.Shape(value.Object(members...))
		assert.Equal(t, 11, out.Len())
		assert.False(t, out.Has(TruncatedKey))
	})

	t.Run("LongString", func(t *testing.T) {
		long := strings.Repeat("é", 250)

		out, _ := d.Shape(value.Object(value.Member{Key: "body", Value: value.String(long)}))
		body, ok := out.Get("body")
		require.True(t, ok)
		s, _ := body.Str()
		assert.Equal(t, strings.Repeat("é", 200)+StringSuffix, s)
	})

	t.Run("ScalarsUnchanged", func(t *testing.T) {
		out, ok := d.Shape(value.Number(2.5))
		require.True(t, ok)
		assert.Equal(t, "2.5", out.String())
	})
}

func TestFull(t *testing.T) {
	f := NewFull()
	in := mustParse(t, `{"a":{"b":{"c":{"d":{"e":[1,2,3,4,5,6]}}}}}`)

	assert.True(t, f.Accept("trace", &in))
	out, ok := f.Shape(in)
	require.True(t, ok)
	assert.True(t, value.Equal(in, out))
}
