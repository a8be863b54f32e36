package bfnl

import "testing"

func TestStripComments(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"5+ // add five", "5+"},
		{"5+ \\ add five", "5+"},
		{"// only a comment", ""},
		{"\\", ""},
		{"  print  ", "print"},
		{"1+ \\ first // second", "1+"},
		{"1+ // first \\ second", "1+"},
		{"'a/b'=", "'a/b'="},
	}
	for _, tc := range cases {
		if got := StripComments(tc.line); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.line, tc.want, got)
		}
	}
}
