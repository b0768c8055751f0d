package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	testCases := []struct {
		name string
		in   []string
		want []string
	}{
		{"no duplicates", []string{"Admin", "User"}, []string{"Admin", "User"}},
		{"duplicates removed", []string{"User", "User", "Admin", "User"}, []string{"User", "Admin"}},
		{"blank entries dropped", []string{"", " ", "Admin"}, []string{"Admin"}},
		{"whitespace trimmed", []string{" Admin ", "Admin"}, []string{"Admin"}},
		{"empty input", nil, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dedupe(tc.in))
		})
	}
}
