package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidTheaterInput(t *testing.T) {
	valid := theaterReq{
		Name:      "AMC Palace 10",
		Address:   "123 Main St, Springfield",
		SeatCount: 150,
	}

	testCases := []struct {
		name    string
		mutate  func(r *theaterReq)
		invalid bool
	}{
		{"valid input", func(r *theaterReq) {}, false},
		{"blank name", func(r *theaterReq) { r.Name = "" }, true},
		{"whitespace name", func(r *theaterReq) { r.Name = "   \t" }, true},
		{"name at limit", func(r *theaterReq) { r.Name = strings.Repeat("a", 120) }, false},
		{"name over limit", func(r *theaterReq) { r.Name = strings.Repeat("a", 121) }, true},
		{"blank address", func(r *theaterReq) { r.Address = "" }, true},
		{"whitespace address", func(r *theaterReq) { r.Address = "  " }, true},
		{"zero seats", func(r *theaterReq) { r.SeatCount = 0 }, true},
		{"negative seats", func(r *theaterReq) { r.SeatCount = -5 }, true},
		{"one seat", func(r *theaterReq) { r.SeatCount = 1 }, false},
		{"manager reference does not affect field rules", func(r *theaterReq) {
			id := uint64(42)
			r.ManagerID = &id
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.Equal(t, tc.invalid, invalidTheaterInput(req))
		})
	}
}
