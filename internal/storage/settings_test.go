package storage

import "testing"

func TestOrDefault(t *testing.T) {
	cases := []struct {
		name  string
		value string
		def   string
		want  string
	}{
		{"stored value wins", "Hello!", "built-in", "Hello!"},
		{"empty falls back", "", "built-in", "built-in"},
		{"whitespace falls back", "   \n", "built-in", "built-in"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := orDefault(tc.value, tc.def); got != tc.want {
				t.Fatalf("orDefault(%q, %q) = %q, want %q", tc.value, tc.def, got, tc.want)
			}
		})
	}
}
