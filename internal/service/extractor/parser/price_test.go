package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"12,990", 12990, true},
		{"12990원", 12990, true},
		{"₩12,990", 12990, true},
		{"１２，９９０", 12990, true},
		{" 12990 ", 12990, true},
		{"12990.7", 12990, true},
		{"100000000", 100_000_000, true},
		{"1", 1, true},

		{"0", 0, false},
		{"0.5", 0, false},
		{"-5", 0, false},
		{"−5000", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"100000001", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizePrice(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input=%q", tt.input)
		assert.Equal(t, tt.want, got, "input=%q", tt.input)
	}
}
