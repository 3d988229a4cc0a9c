package main

import (
	"strings"
	"testing"
)

func TestConfirmSave(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"uppercase", "Y\n", true},
		{"no", "n\n", false},
		{"empty line defaults to no", "\n", false},
		{"eof defaults to no", "", false},
		{"garbage", "sure\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := confirmSave(strings.NewReader(tc.input)); got != tc.want {
				t.Errorf("confirmSave(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
