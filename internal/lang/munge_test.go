package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMunge(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo", "foo"},
		{"foo-bar", "foo_bar"},
		{"empty?", "empty__Q__"},
		{"swap!", "swap__BANG__"},
		{"->map", "___GT__map"},
		{"+", "__PLUS__"},
		{"a.b", "a__DOT__b"},
		{"x'", "x__PRIME__"},
		{"2nd", "_2nd"},
		{"a2", "a2"},
		{"λ", "λ"},
		{"a@b", "a__U0040__b"},
		{"type", "type_"},
		{"len", "len_"},
		{"map", "map_"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Munge(tt.in))
		})
	}
}

func TestMungeDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, "not__EQ__", Munge("not="))
	}
}

func TestMungeDistinctNames(t *testing.T) {
	names := []string{"a?", "a!", "a*", "a+", "a=", "a<", "a>", "a%", "a$", "a&"}
	seen := make(map[string]string)
	for _, n := range names {
		m := Munge(n)
		prev, dup := seen[m]
		assert.False(t, dup, "%q and %q both munge to %q", prev, n, m)
		seen[m] = n
	}
}
