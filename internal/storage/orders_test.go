package storage

import "testing"

func TestMintOrderID(t *testing.T) {
	cases := []struct {
		seq  int
		want string
	}{
		{1, "ORDER_00001"},
		{2, "ORDER_00002"},
		{42, "ORDER_00042"},
		{99999, "ORDER_99999"},
		{100000, "ORDER_100000"},
	}
	for _, tc := range cases {
		if got := MintOrderID(tc.seq); got != tc.want {
			t.Errorf("MintOrderID(%d) = %q, want %q", tc.seq, got, tc.want)
		}
	}
}

func TestMintOrderIDMonotonic(t *testing.T) {
	prev := MintOrderID(1)
	for seq := 2; seq < 200; seq++ {
		cur := MintOrderID(seq)
		if cur <= prev {
			t.Fatalf("MintOrderID(%d) = %q not greater than %q", seq, cur, prev)
		}
		prev = cur
	}
}
